// Package remotetest provides an in-memory messaging service for tests.
package remotetest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// BasePath is the path prefix the fake serves under.
const BasePath = "/v0/"

// Recorded is one request seen by the fake.
type Recorded struct {
	Method   string
	Path     string
	RawQuery string
	Username string
	Body     map[string]any
}

type member struct {
	ID     string  `json:"id"`
	Secret string  `json:"-"`
	Alias  *string `json:"alias"`
	Role   string  `json:"role"`
}

type message struct {
	SenderID string `json:"sender_id"`
	Message  string `json:"message"`
}

type network struct {
	id       string
	alias    *string
	members  []*member
	messages []message
}

// Service is a fake of the remote messaging service.
type Service struct {
	// CreateAuth, when set, is required as Basic auth on network creation.
	CreateAuth *[2]string

	mu       sync.Mutex
	seq      int
	networks map[string]*network
	requests []Recorded
	server   *httptest.Server
}

// New starts a fake service that is closed with the test.
func New(t testing.TB) *Service {
	t.Helper()
	s := &Service{networks: make(map[string]*network)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+BasePath+"network", s.createNetwork)
	mux.HandleFunc("POST "+BasePath+"{nid}/network", s.updateNetwork)
	mux.HandleFunc("POST "+BasePath+"{nid}/member", s.createMember)
	mux.HandleFunc("GET "+BasePath+"{nid}/member", s.listMembers)
	mux.HandleFunc("POST "+BasePath+"{nid}/member/{mid}", s.updateMember)
	mux.HandleFunc("POST "+BasePath+"{nid}/message", s.createMessage)
	mux.HandleFunc("GET "+BasePath+"{nid}/message", s.listMessages)

	s.server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.server.Close)
	return s
}

// Endpoint returns the base URL clients should use, with a trailing slash.
func (s *Service) Endpoint() string {
	return s.server.URL + BasePath
}

// Client returns an HTTP client for the fake's server.
func (s *Service) Client() *http.Client {
	return s.server.Client()
}

// Requests returns every request received so far.
func (s *Service) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// AddNetwork seeds a network with one admin member and returns its ids.
func (s *Service) AddNetwork(alias string) (networkID, memberID, secret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, m := s.newNetworkLocked(optional(alias))
	return n.id, m.ID, m.Secret
}

// Post seeds a message from memberID.
func (s *Service) Post(networkID, memberID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.networks[networkID]
	n.messages = append(n.messages, message{SenderID: memberID, Message: text})
}

// NetworkAlias returns the alias the service holds for a network.
func (s *Service) NetworkAlias(networkID string) *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.networks[networkID].alias
}

// Members returns how many members a network has.
func (s *Service) Members(networkID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.networks[networkID].members)
}

// Messages returns the texts posted to a network.
func (s *Service) Messages(networkID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, m := range s.networks[networkID].messages {
		out = append(out, m.Message)
	}
	return out
}

func (s *Service) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := Recorded{Method: r.Method, Path: r.URL.Path, RawQuery: r.URL.RawQuery}
		rec.Username, _, _ = r.BasicAuth()
		if r.Body != nil {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				rec.Body = body
			}
		}
		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), bodyKey{}, rec.Body)))
	})
}

func (s *Service) newNetworkLocked(alias *string) (*network, *member) {
	s.seq++
	n := &network{id: "net" + strconv.Itoa(s.seq), alias: alias}
	m := s.newMemberLocked(n, "admin", nil)
	s.networks[n.id] = n
	return n, m
}

func (s *Service) newMemberLocked(n *network, role string, alias *string) *member {
	s.seq++
	m := &member{
		ID:     "mem" + strconv.Itoa(s.seq),
		Secret: "sec" + strconv.Itoa(s.seq),
		Alias:  alias,
		Role:   role,
	}
	n.members = append(n.members, m)
	return m
}

// authorize resolves the network and checks the caller is one of its members.
func (s *Service) authorize(w http.ResponseWriter, r *http.Request) (*network, *member, bool) {
	n, ok := s.networks[r.PathValue("nid")]
	if !ok {
		http.Error(w, "network not found", http.StatusNotFound)
		return nil, nil, false
	}
	user, pass, _ := r.BasicAuth()
	for _, m := range n.members {
		if m.ID == user && m.Secret == pass {
			return n, m, true
		}
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
	return nil, nil, false
}

func (s *Service) createNetwork(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateAuth != nil {
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.CreateAuth[0] || pass != s.CreateAuth[1] {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
	}
	body := bodyOf(r)
	if body["type"] != "home" {
		http.Error(w, fmt.Sprintf("unsupported network type %v", body["type"]), http.StatusBadRequest)
		return
	}

	n, m := s.newNetworkLocked(stringField(body, "alias"))
	writeJSON(w, map[string]any{"member": map[string]any{
		"id":         m.ID,
		"secret":     m.Secret,
		"network_id": n.id,
		"alias":      m.Alias,
		"role":       m.Role,
	}})
}

func (s *Service) updateNetwork(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, _, ok := s.authorize(w, r)
	if !ok {
		return
	}
	n.alias = stringField(bodyOf(r), "alias")
	writeJSON(w, map[string]any{"id": n.id, "status": "active", "type": "home", "alias": n.alias})
}

func (s *Service) createMember(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, _, ok := s.authorize(w, r)
	if !ok {
		return
	}
	body := bodyOf(r)
	role, _ := body["role"].(string)
	m := s.newMemberLocked(n, role, stringField(body, "alias"))
	writeJSON(w, map[string]any{"id": m.ID, "secret": m.Secret, "alias": m.Alias, "role": m.Role})
}

func (s *Service) updateMember(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, caller, ok := s.authorize(w, r)
	if !ok {
		return
	}
	if caller.ID != r.PathValue("mid") {
		http.Error(w, "members can only update themselves", http.StatusForbidden)
		return
	}
	caller.Alias = stringField(bodyOf(r), "alias")
	writeJSON(w, map[string]any{"id": caller.ID, "alias": caller.Alias})
}

func (s *Service) listMembers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, _, ok := s.authorize(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{"network_id": n.id, "members": n.members})
}

func (s *Service) createMessage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, caller, ok := s.authorize(w, r)
	if !ok {
		return
	}
	text, _ := bodyOf(r)["message"].(string)
	n.messages = append(n.messages, message{SenderID: caller.ID, Message: text})
	writeJSON(w, map[string]any{"network_id": n.id})
}

func (s *Service) listMessages(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, _, ok := s.authorize(w, r)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = len(n.messages)
	}
	msgs := n.messages
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	writeJSON(w, map[string]any{"network_id": n.id, "messages": append([]message{}, msgs...)})
}

type bodyKey struct{}

// bodyOf returns the decoded JSON body. The record middleware consumed the
// stream.
func bodyOf(r *http.Request) map[string]any {
	body, _ := r.Context().Value(bodyKey{}).(map[string]any)
	return body
}

func stringField(body map[string]any, key string) *string {
	v, ok := body[key].(string)
	if !ok {
		return nil
	}
	return &v
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
