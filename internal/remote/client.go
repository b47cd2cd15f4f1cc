package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds a single request, including reading the body.
const DefaultTimeout = 30 * time.Second

// Credentials are sent as HTTP Basic auth.
type Credentials struct {
	Username string
	Password string
}

// Request describes one call to the service.
type Request struct {
	Method   string
	Endpoint string
	Path     string
	Query    url.Values
	// Body is marshaled as JSON when non-nil.
	Body any
	// Auth is omitted from the request when nil.
	Auth *Credentials
}

// URL returns endpoint and path concatenated, plus the encoded query.
func (r Request) URL() string {
	u := r.Endpoint + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	return u
}

// Response is a 2xx reply with its body fully read.
type Response struct {
	Status int
	Body   []byte
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// StatusError is returned for any non-2xx reply.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("service returned status %d: %s", e.Status, e.Body)
}

// Client performs requests against the service.
type Client struct {
	httpClient *http.Client
	log        *slog.Logger
	userAgent  string
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(cl *Client) {
		cl.log = log
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithTimeout sets the request timeout. It applies to whichever HTTP client
// the Client ends up with, regardless of option order.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.timeout = d
	}
}

// New creates a Client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		userAgent:  "tellnet-cli",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.timeout > 0 {
		// Copy so a caller's shared client keeps its own timeout.
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Do sends req and returns the response for 2xx statuses.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	var payload []byte
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		payload = data
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Auth != nil {
		httpReq.SetBasicAuth(req.Auth.Username, req.Auth.Password)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.URL(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.trace(httpReq, payload, resp.StatusCode, body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Body: string(body)}
	}
	return &Response{Status: resp.StatusCode, Body: body}, nil
}

// trace logs the exchange at debug level. Headers go out as individual string
// attributes so the logger's redaction sees the Authorization value.
func (c *Client) trace(req *http.Request, reqBody []byte, status int, respBody []byte) {
	ctx := req.Context()
	if !c.log.Enabled(ctx, slog.LevelDebug) {
		return
	}

	headers := make([]any, 0, len(req.Header))
	for name := range req.Header {
		headers = append(headers, slog.String(name, req.Header.Get(name)))
	}

	c.log.DebugContext(ctx, "request",
		"method", req.Method,
		"url", req.URL.String(),
		slog.Group("headers", headers...),
		"body", string(reqBody),
	)
	c.log.DebugContext(ctx, "response",
		"status", status,
		"body", string(respBody),
	)
}
