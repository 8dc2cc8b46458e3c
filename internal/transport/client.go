// Package transport provides the shared HTTP plumbing for source
// adapters: a client with identification and timeout defaults, JSON
// decoding with status classification, and a bounded retry loop that
// only replays transient and rate-limit failures.
package transport

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/entityscope/orbite/pkg/constants"
	"github.com/entityscope/orbite/pkg/errors"
)

// Client wraps an http.Client with the engine's defaults. All source
// endpoints are public and keyless; identification happens through the
// User-Agent header only.
type Client struct {
	http      *http.Client
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a transport client.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: constants.DefaultHTTPTimeout},
		userAgent: constants.UserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request with identification headers applied.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapIO("create request", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	return c.http.Do(req)
}

// GetJSON fetches url and decodes the JSON body into target. Failures
// come back as FetchErrors classified for retry dispatch: connection
// problems and timeouts as transient, HTTP statuses per their code,
// undecodable bodies as parse failures.
func (c *Client) GetJSON(ctx context.Context, source, op, url string, target any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return classifyTransport(source, op, err)
	}
	return DecodeJSON(resp, source, op, target)
}

// DecodeJSON decodes resp into target, classifying non-OK statuses.
// The body is always closed.
func DecodeJSON(resp *http.Response, source, op string, target any) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewFetchError(source, op, errors.ReasonTransient, resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &errors.FetchError{
			Source:     source,
			Op:         op,
			Reason:     errors.ClassifyStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    snippet(body),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.NewFetchError(source, op, errors.ReasonParse, 0, err)
	}
	return nil
}

// classifyTransport maps a low-level request error onto the fetch
// taxonomy. Caller cancellation is passed through as ErrCanceled so the
// retry loop stops instead of replaying an aborted call.
func classifyTransport(source, op string, err error) error {
	if stderrors.Is(err, context.Canceled) {
		return errors.ErrCanceled
	}
	return errors.NewFetchError(source, op, errors.ReasonTransient, 0, err)
}

// snippet trims an error body to something loggable.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
