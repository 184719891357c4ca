package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KyahWill/osci"
	"github.com/rs/zerolog"
)

// Interface compliance checks.
var (
	_ osci.SessionService    = (*Client)(nil)
	_ osci.RepositoryService = (*Client)(nil)
	_ osci.ChatService       = (*Client)(nil)
)

const (
	defaultTimeout     = 30 * time.Second
	defaultChatTimeout = 2 * time.Minute
)

// Client is an HTTP client for the backend service.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	logger      zerolog.Logger
	timeout     time.Duration
	chatTimeout time.Duration
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the backend base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(url, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for swallowed failures.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout bounds session and repository calls. Expiry counts as a
// transport failure.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithChatTimeout bounds chat calls, which wait on the agent.
func WithChatTimeout(d time.Duration) Option {
	return func(c *Client) { c.chatTimeout = d }
}

// New creates a [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		httpClient:  http.DefaultClient,
		logger:      zerolog.Nop(),
		timeout:     defaultTimeout,
		chatTimeout: defaultChatTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the backend base URL the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// post sends body as JSON to path and decodes a 2xx response into out when out
// is non-nil. Non-2xx responses are returned as *osci.BackendError. Transport
// failures, including an undecodable success body, are wrapped.
func (c *Client) post(ctx context.Context, timeout time.Duration, op, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("backend: %s: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("backend: %s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseHTTPError(op, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: %s: decode response: %w", op, err)
	}
	return nil
}

func parseHTTPError(op string, resp *http.Response) error {
	be := &osci.BackendError{Op: op, StatusCode: resp.StatusCode}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return be
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil {
		be.Message = apiErr.Error
	}
	return be
}
