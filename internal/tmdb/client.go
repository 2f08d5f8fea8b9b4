// Package tmdb is a read-only client for The Movie Database v3 API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	// DefaultBaseURL is the public v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultImageBaseURL is the public image CDN root
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"

	defaultTimeout  = 30 * time.Second
	validateTimeout = 10 * time.Second
	userAgent       = "Marquee/1.0"
)

// Client implements domain.CatalogClient and domain.SearchClient for TMDB
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new TMDB API client. An empty baseURL selects the
// public API and an empty language leaves the API default in place.
func NewClient(baseURL, apiKey, language string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		language: language,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs an authenticated GET and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case http.StatusNotFound:
		return nil, domain.ErrItemNotFound
	case http.StatusTooManyRequests:
		return nil, domain.ErrRateLimited
	}

	var apiErr ErrorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.StatusMessage != "" {
		c.logger.Error("tmdb request error", "status", resp.StatusCode, "message", apiErr.StatusMessage)
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, apiErr.StatusMessage)
	}
	c.logger.Error("tmdb request error", "status", resp.StatusCode)
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", domain.ErrServerOffline, resp.StatusCode)
	}
	return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}

// getJSON fetches path and decodes the body into v
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// ListCategory returns one page of a category listing and the total page count
func (c *Client) ListCategory(ctx context.Context, cat domain.Category, page int) ([]*domain.CatalogItem, int, error) {
	if !cat.Valid() {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, cat)
	}
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))

	var resp ListResponse
	if err := c.getJSON(ctx, cat.Path(), query, &resp); err != nil {
		return nil, 0, err
	}

	totalPages := resp.TotalPages
	if totalPages == 0 {
		totalPages = 1
	}
	return MapResults(resp.Results), totalPages, nil
}

// GetDetail returns extended metadata for a movie or show
func (c *Client) GetDetail(ctx context.Context, kind domain.MediaKind, id int) (*domain.Detail, error) {
	path := fmt.Sprintf("/%s/%d", kind, id)

	if kind == domain.KindTV {
		var resp TVDetail
		if err := c.getJSON(ctx, path, nil, &resp); err != nil {
			return nil, err
		}
		return MapTVDetail(resp), nil
	}

	var resp MovieDetail
	if err := c.getJSON(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return MapMovieDetail(resp), nil
}

// Search runs a multi search and returns the first page of results in API order
func (c *Client) Search(ctx context.Context, query string) ([]*domain.CatalogItem, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")

	var resp ListResponse
	if err := c.getJSON(ctx, "/"+string(domain.SearchResults), params, &resp); err != nil {
		return nil, err
	}
	return MapResults(resp.Results), nil
}

// ValidateAPIKey checks key against the authentication endpoint.
// Returns domain.ErrAuthFailed when TMDB rejects the key.
func ValidateAPIKey(ctx context.Context, baseURL, key string) error {
	if strings.TrimSpace(key) == "" {
		return domain.ErrAuthFailed
	}

	c := NewClient(baseURL, key, "", nil)
	c.httpClient.Timeout = validateTimeout

	var resp AuthResponse
	if err := c.getJSON(ctx, "/authentication", nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return domain.ErrAuthFailed
	}
	return nil
}

// IsRetryable reports whether err is worth retrying later
func IsRetryable(err error) bool {
	return errors.Is(err, domain.ErrServerOffline) || errors.Is(err, domain.ErrRateLimited)
}
