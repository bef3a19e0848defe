package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/domain"
	"github.com/bytedance/sonic"
)

// Client talks to the catalog backend. All methods issue exactly one GET
// request; there are no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets a per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a backend client for the given base URL,
// e.g. "http://localhost:8000".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %q", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FacetOptions fetches GET /api/<endpoint>, where endpoint is the facet's
// kebab-case path segment.
func (c *Client) FacetOptions(ctx context.Context, endpoint string) ([]string, error) {
	var options []string
	if err := c.get(ctx, RouteFacetOptions, "/api/"+endpoint, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// Search fetches GET /api/esolangs/search/?<query>. The query must already
// be encoded; it is sent verbatim. An empty query matches everything.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	var ids []string
	if err := c.get(ctx, RouteSearch, "/api/esolangs/search/?"+query, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Languages fetches the unfiltered listing GET /api/esolangs.
func (c *Client) Languages(ctx context.Context) ([]string, error) {
	var ids []string
	if err := c.get(ctx, RouteLanguages, "/api/esolangs", &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Language fetches the detail record of a language. name is the decoded
// identifier; it is percent-encoded exactly once here.
func (c *Client) Language(ctx context.Context, name string) (domain.Language, error) {
	var lang domain.Language
	if err := c.get(ctx, RouteLanguage, "/api/esolangs/"+EscapeComponent(name), &lang); err != nil {
		return domain.Language{}, err
	}
	return lang, nil
}

// Similar fetches GET /api/esolangs/similar/<name>. A 404 is returned as
// ErrNotFound; callers decide whether that means "none found".
func (c *Client) Similar(ctx context.Context, name string) ([]string, error) {
	var ids []string
	if err := c.get(ctx, RouteSimilar, "/api/esolangs/similar/"+EscapeComponent(name), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// get issues the request and decodes a JSON body into v.
func (c *Client) get(ctx context.Context, route, pathAndQuery string, v any) error {
	started := time.Now()
	target := c.baseURL + pathAndQuery

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", route, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "Backend request", "route", route, "url", target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe(route, outcomeTransport, started)
		return fmt.Errorf("%s: request failed: %w", route, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		observe(route, outcomeNotFound, started)
		return fmt.Errorf("%s: %w", route, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observe(route, outcomeStatus, started)
		return &StatusError{Route: route, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observe(route, outcomeTransport, started)
		return fmt.Errorf("%s: failed to read body: %w", route, err)
	}

	if err := sonic.Unmarshal(body, v); err != nil {
		observe(route, outcomeDecode, started)
		return fmt.Errorf("%s: failed to decode body: %w", route, err)
	}

	observe(route, outcomeOK, started)
	c.logger.DebugContext(ctx, "Backend response", "route", route, "status", resp.StatusCode, "duration", time.Since(started))
	return nil
}

// IsStatusError reports whether err carries a non-2xx, non-404 status.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
