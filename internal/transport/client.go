// Package transport is the HTTP client used to download remote sources.
package transport

import (
	"context"
	"io"
	"net/http"

	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
)

// DefaultUserAgent identifies toolmap to remote hosts.
const DefaultUserAgent = "toolmap"

// Client performs GET requests with optional authentication.
type Client struct {
	http       *http.Client
	auth       Authenticator
	credential string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithAuth authenticates every request with credential. An empty
// credential disables authentication.
func WithAuth(auth Authenticator, credential string) Option {
	return func(cl *Client) {
		if auth != nil && credential != "" {
			cl.auth = auth
			cl.credential = credential
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		if ua != "" {
			cl.userAgent = ua
		}
	}
}

// New creates a client with DefaultHTTPTimeout and no authentication.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: constants.DefaultHTTPTimeout},
		auth:      &NoAuth{},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs an authenticated GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	c.auth.Apply(req, c.credential)
	return c.http.Do(req)
}

// Open downloads url and returns its body. Transport failures and non-200
// responses are reported as APIErrors for service.
func (c *Client) Open(ctx context.Context, service, url string) (io.ReadCloser, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, &errors.APIError{
			Service:  service,
			Endpoint: url,
			Message:  "request failed",
			Err:      err,
		}
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &errors.APIError{
			Service:    service,
			Endpoint:   url,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}
	return resp.Body, nil
}
