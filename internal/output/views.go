package output

import (
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/tellnet/tellnet/internal/config"
	"github.com/tellnet/tellnet/internal/registry"
	"github.com/tellnet/tellnet/internal/remote"
)

// NetworkView is a registered network without its secret.
type NetworkView struct {
	NetworkID string  `json:"network_id" yaml:"network_id"`
	Endpoint  string  `json:"endpoint" yaml:"endpoint"`
	MemberID  string  `json:"member_id" yaml:"member_id"`
	Alias     *string `json:"alias" yaml:"alias"`
	Default   bool    `json:"default" yaml:"default"`
}

func networkView(n registry.Network, isDefault bool) NetworkView {
	return NetworkView{
		NetworkID: n.NetworkID,
		Endpoint:  n.Endpoint,
		MemberID:  n.MemberID,
		Alias:     n.Alias,
		Default:   isDefault,
	}
}

// Networks lists the registry, marking position 0 as the default.
func (f *Formatter) Networks(networks []registry.Network) error {
	views := lo.Map(networks, func(n registry.Network, i int) NetworkView {
		return networkView(n, i == 0)
	})
	return f.emit(views, func(w io.Writer) error {
		for _, v := range views {
			line := v.NetworkID
			if v.Alias != nil && *v.Alias != "" {
				line += " (" + *v.Alias + ")"
			}
			line += " @ " + v.Endpoint
			if v.Default {
				line += " (DEFAULT)"
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	})
}

// NetworkCreated reports a newly registered network.
func (f *Formatter) NetworkCreated(n registry.Network) error {
	return f.emit(networkView(n, true), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Created network %s\n", n.NetworkID)
		return err
	})
}

// NetworkUpdated reports the service's view after an update.
func (f *Formatter) NetworkUpdated(info *remote.NetworkInfo) error {
	return f.emit(info, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Network %s, status:%s, type:%s, alias:%s\n",
			info.ID, info.Status, info.Type, deref(info.Alias))
		return err
	})
}

// InviteView is a created member with its share link.
type InviteView struct {
	NetworkID string  `json:"network_id" yaml:"network_id"`
	MemberID  string  `json:"member_id" yaml:"member_id"`
	Alias     *string `json:"alias" yaml:"alias"`
	Role      string  `json:"role" yaml:"role"`
	Link      string  `json:"link" yaml:"link"`
}

// MemberInvited prints the share link. The QR block is text-only.
func (f *Formatter) MemberInvited(networkID string, m *remote.Member, link, qr string) error {
	view := InviteView{NetworkID: networkID, MemberID: m.ID, Alias: m.Alias, Role: m.Role, Link: link}
	return f.emit(view, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Share this link:\n%s\n%s", link, qr)
		return err
	})
}

// MemberAliasView is a member after an alias change.
type MemberAliasView struct {
	ID    string  `json:"id" yaml:"id"`
	Alias *string `json:"alias" yaml:"alias"`
}

// MemberUpdated reports the caller's new alias.
func (f *Formatter) MemberUpdated(m *remote.Member) error {
	return f.emit(MemberAliasView{ID: m.ID, Alias: m.Alias}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Member: @%s (%s)\n", m.ID, deref(m.Alias))
		return err
	})
}

// MemberView is one member of a listing.
type MemberView struct {
	ID    string  `json:"id" yaml:"id"`
	Alias *string `json:"alias" yaml:"alias"`
	Role  string  `json:"role" yaml:"role"`
	You   bool    `json:"you" yaml:"you"`
}

// MemberListView is a network's member listing.
type MemberListView struct {
	NetworkID string       `json:"network_id" yaml:"network_id"`
	Members   []MemberView `json:"members" yaml:"members"`
}

// Members lists a network's members, marking selfID as the caller.
func (f *Formatter) Members(list *remote.MemberList, selfID string) error {
	view := MemberListView{
		NetworkID: list.NetworkID,
		Members: lo.Map(list.Members, func(m remote.Member, _ int) MemberView {
			return MemberView{ID: m.ID, Alias: m.Alias, Role: m.Role, You: m.ID == selfID}
		}),
	}
	return f.emit(view, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Network: %s\n", view.NetworkID); err != nil {
			return err
		}
		for _, m := range view.Members {
			line := "@" + m.ID
			if m.Alias != nil {
				line += " (" + *m.Alias + ")"
			}
			line += ": " + m.Role
			if m.You {
				line += " (YOU)"
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	})
}

// SentView confirms a posted message.
type SentView struct {
	NetworkID string `json:"network_id" yaml:"network_id"`
	Message   string `json:"message" yaml:"message"`
}

// MessageSent confirms a message was accepted.
func (f *Formatter) MessageSent(networkID, text string) error {
	return f.emit(SentView{NetworkID: networkID, Message: text}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Message sent to %s\n", networkID)
		return err
	})
}

// Messages lists a network's recent messages.
func (f *Formatter) Messages(list *remote.MessageList) error {
	if list.Messages == nil {
		list.Messages = []remote.Message{}
	}
	return f.emit(list, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Network: %s\n", list.NetworkID); err != nil {
			return err
		}
		for _, m := range list.Messages {
			if _, err := fmt.Fprintf(w, "@%s: %s\n", m.SenderID, m.Message); err != nil {
				return err
			}
		}
		return nil
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ConfigView is the configuration with the password hidden.
type ConfigView struct {
	Endpoint       string  `json:"endpoint" yaml:"endpoint"`
	NewNetworkUser *string `json:"new_network_user" yaml:"new_network_user"`
}

// Config prints the effective configuration.
func (f *Formatter) Config(cfg *config.Config) error {
	view := ConfigView{Endpoint: cfg.Endpoint}
	if cfg.NewNetworkAuth != nil {
		view.NewNetworkUser = &cfg.NewNetworkAuth.Username
	}
	return f.emit(view, func(w io.Writer) error {
		user := "none (anonymous)"
		if view.NewNetworkUser != nil {
			user = *view.NewNetworkUser + " (password hidden)"
		}
		_, err := fmt.Fprintf(w, "endpoint: %s\nnew network auth: %s\n", view.Endpoint, user)
		return err
	})
}
