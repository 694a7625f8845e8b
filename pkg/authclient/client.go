// Package authclient talks to a remote sign-up API over HTTP/JSON and
// implements signup.AuthClient.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-signup/pkg/signup"
)

const maxErrorBody = 64 << 10

// ErrBaseURL is returned when the client is constructed without a usable base
// URL.
var ErrBaseURL = errors.New("authclient: base URL must be absolute")

// Client is an HTTP implementation of signup.AuthClient.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
	headers  http.Header
}

var _ signup.AuthClient = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger sets the client's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHeader adds a header sent with every request, e.g. an API key.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// New constructs a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBaseURL, baseURL)
	}
	c := &Client{
		endpoint: strings.TrimRight(parsed.String(), "/") + SignUpPath,
		http:     &http.Client{Timeout: 10 * time.Second},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		headers:  make(http.Header),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// SignUp posts values to the remote API. Rejections with a JSON error body
// come back as *signup.AuthError; anything else is a plain error.
func (c *Client) SignUp(ctx context.Context, values signup.Values) (signup.Session, error) {
	body, err := json.Marshal(values)
	if err != nil {
		return signup.Session{}, fmt.Errorf("authclient: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return signup.Session{}, fmt.Errorf("authclient: build request: %w", err)
	}
	for key, vals := range c.headers {
		for _, v := range vals {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return signup.Session{}, fmt.Errorf("authclient: post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var sess signup.Session
		if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
			return signup.Session{}, fmt.Errorf("authclient: decode session: %w", err)
		}
		if sess.ID == "" || sess.Token == "" {
			return signup.Session{}, errors.New("authclient: response carried no session")
		}
		return sess, nil
	}

	return signup.Session{}, c.decodeError(resp)
}

func (c *Client) decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	statusErr := fmt.Errorf("authclient: unexpected status %d", resp.StatusCode)

	if resp.StatusCode >= 500 {
		c.logger.Warn("auth service error", "status", resp.StatusCode)
		return statusErr
	}

	var payload ErrorResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.logger.Warn("auth error body not json", "status", resp.StatusCode, "error", err)
		return statusErr
	}

	mapping := signup.MapErrorPayload(payload.Errors)
	authErr := &signup.AuthError{
		Message: strings.TrimSpace(payload.Message),
		Fields:  mapping.Fields,
	}
	if authErr.Message == "" && len(mapping.Form) > 0 {
		authErr.Message = mapping.Form[0]
	}
	if authErr.RootMessage() == "" {
		return statusErr
	}
	return authErr
}
