package registry

// Network is one locally known network and the credentials this client uses
// on it.
type Network struct {
	NetworkID    string `json:"network_id"`
	Endpoint     string `json:"endpoint"`
	MemberID     string `json:"member_id"`
	MemberSecret string `json:"member_secret"`
	// Alias is written as null when unset.
	Alias *string `json:"alias"`
}

// AliasOrEmpty returns the alias, or "" when none is set.
func (n Network) AliasOrEmpty() string {
	if n.Alias == nil {
		return ""
	}
	return *n.Alias
}

// SetAlias sets the alias. An empty string clears it.
func (n *Network) SetAlias(alias string) {
	if alias == "" {
		n.Alias = nil
		return
	}
	n.Alias = &alias
}
