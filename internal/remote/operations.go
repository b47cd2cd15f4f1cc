package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// MessageListLimit is how many messages ListMessages asks for.
const MessageListLimit = 10

// Target addresses an existing network with a member's credentials.
type Target struct {
	Endpoint  string
	NetworkID string
	MemberID  string
	Secret    string
}

func (t Target) auth() *Credentials {
	return &Credentials{Username: t.MemberID, Password: t.Secret}
}

// CreateNetworkRequest is the body of a network creation.
type CreateNetworkRequest struct {
	Type  string  `json:"type"`
	Alias *string `json:"alias"`
}

// Member is a member record as returned by the service.
type Member struct {
	ID        string  `json:"id" yaml:"id"`
	Secret    string  `json:"secret,omitempty" yaml:"-"`
	NetworkID string  `json:"network_id,omitempty" yaml:"network_id,omitempty"`
	Alias     *string `json:"alias" yaml:"alias"`
	Role      string  `json:"role,omitempty" yaml:"role,omitempty"`
}

// CreateNetworkResponse carries the creator's membership.
type CreateNetworkResponse struct {
	Member Member `json:"member"`
}

// NetworkInfo is the service's view of a network.
type NetworkInfo struct {
	ID     string  `json:"id" yaml:"id"`
	Status string  `json:"status" yaml:"status"`
	Type   string  `json:"type" yaml:"type"`
	Alias  *string `json:"alias" yaml:"alias"`
}

// AliasRequest is the body of network and member updates.
type AliasRequest struct {
	Alias string `json:"alias"`
}

// CreateMemberRequest is the body of a member invitation.
type CreateMemberRequest struct {
	Role  string  `json:"role"`
	Alias *string `json:"alias"`
}

// MemberList is the reply of ListMembers.
type MemberList struct {
	NetworkID string   `json:"network_id" yaml:"network_id"`
	Members   []Member `json:"members" yaml:"members"`
}

// MessageRequest is the body of CreateMessage.
type MessageRequest struct {
	Message string `json:"message"`
}

// Message is one entry of a message listing.
type Message struct {
	SenderID string `json:"sender_id" yaml:"sender_id"`
	Message  string `json:"message" yaml:"message"`
}

// MessageList is the reply of ListMessages.
type MessageList struct {
	NetworkID string    `json:"network_id" yaml:"network_id"`
	Messages  []Message `json:"messages" yaml:"messages"`
}

// CreateNetwork registers a new network at endpoint. auth may be nil for
// services that allow anonymous creation.
func (c *Client) CreateNetwork(ctx context.Context, endpoint string, auth *Credentials, body CreateNetworkRequest) (*CreateNetworkResponse, error) {
	var out CreateNetworkResponse
	err := c.call(ctx, Request{
		Method:   http.MethodPost,
		Endpoint: endpoint,
		Path:     "network",
		Body:     body,
		Auth:     auth,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNetwork changes the network's alias.
func (c *Client) UpdateNetwork(ctx context.Context, t Target, alias string) (*NetworkInfo, error) {
	var out NetworkInfo
	if err := c.call(ctx, t.post("/network", AliasRequest{Alias: alias}), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMember invites a new member and returns its credentials.
func (c *Client) CreateMember(ctx context.Context, t Target, body CreateMemberRequest) (*Member, error) {
	var out Member
	if err := c.call(ctx, t.post("/member", body), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMember changes the alias of the calling member. The service only lets
// members rename themselves.
func (c *Client) UpdateMember(ctx context.Context, t Target, alias string) (*Member, error) {
	var out Member
	if err := c.call(ctx, t.post("/member/"+t.MemberID, AliasRequest{Alias: alias}), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMembers returns the network's members.
func (c *Client) ListMembers(ctx context.Context, t Target) (*MemberList, error) {
	var out MemberList
	if err := c.call(ctx, t.get("/member", nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMessage posts text to the network. The reply body is not used.
func (c *Client) CreateMessage(ctx context.Context, t Target, text string) error {
	_, err := c.Do(ctx, t.post("/message", MessageRequest{Message: text}))
	return err
}

// ListMessages returns the latest messages, up to MessageListLimit.
func (c *Client) ListMessages(ctx context.Context, t Target) (*MessageList, error) {
	query := url.Values{"limit": []string{strconv.Itoa(MessageListLimit)}}
	var out MessageList
	if err := c.call(ctx, t.get("/message", query), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) call(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func (t Target) post(suffix string, body any) Request {
	return Request{
		Method:   http.MethodPost,
		Endpoint: t.Endpoint,
		Path:     t.NetworkID + suffix,
		Body:     body,
		Auth:     t.auth(),
	}
}

func (t Target) get(suffix string, query url.Values) Request {
	return Request{
		Method:   http.MethodGet,
		Endpoint: t.Endpoint,
		Path:     t.NetworkID + suffix,
		Query:    query,
		Auth:     t.auth(),
	}
}
