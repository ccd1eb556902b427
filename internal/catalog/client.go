package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/videoclub/internal/domain"
)

const (
	// CatalogPath is the backend path serving the catalog
	CatalogPath = "/video"

	userAgent = "Videoclub/1.0"
)

// Client fetches the media catalog from the backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds the catalog request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a catalog client for the backend at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchCatalog performs the single catalog request and classifies the
// outcome. It never retries.
func (c *Client) FetchCatalog(ctx context.Context) domain.CatalogResult {
	body, cerr := c.doRequest(ctx)
	if cerr != nil {
		return domain.Failed(cerr)
	}

	entries, isList, cerr := c.parseCatalog(body)
	if cerr != nil {
		return domain.Failed(cerr)
	}
	if !isList || len(entries) == 0 {
		c.logger.Info("catalog is empty", "isList", isList)
		return domain.Empty()
	}

	for i, e := range entries {
		if e.HasIssues() {
			c.logger.Warn("catalog entry has malformed fields", "index", i, "fields", e.Issues)
		}
	}

	c.logger.Info("catalog loaded", "entries", len(entries))
	return domain.Loaded(entries)
}

// doRequest issues GET /video and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context) ([]byte, *domain.CatalogError) {
	reqURL := c.baseURL + CatalogPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &domain.CatalogError{
			Kind: domain.FailureTransport,
			Err:  fmt.Errorf("failed to create request: %w", err),
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "method", http.MethodGet, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "error", err)
		return nil, &domain.CatalogError{
			Kind: domain.FailureTransport,
			Err:  fmt.Errorf("%w: %w", domain.ErrServerOffline, err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("catalog request error", "status", resp.StatusCode)
		return nil, domain.NewStatusError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.CatalogError{
			Kind: domain.FailureTransport,
			Err:  fmt.Errorf("failed to read response: %w", err),
		}
	}
	return body, nil
}

// parseCatalog decodes the body. A body that is valid JSON but not an array
// reports isList=false rather than an error.
func (c *Client) parseCatalog(body []byte) ([]domain.MediaEntry, bool, *domain.CatalogError) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, false, &domain.CatalogError{
			Kind: domain.FailurePayload,
			Err:  fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err),
		}
	}

	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false, nil
	}

	var entries []domain.MediaEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, true, &domain.CatalogError{
			Kind: domain.FailurePayload,
			Err:  fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err),
		}
	}
	return entries, true, nil
}
