package cache

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

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Marquee/1.0"

	// Idle connections kept per host; shards are fetched in a wide burst.
	maxIdlePerHost = 64
)

// StatusError reports a non-success HTTP status from the cache service
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Client implements domain.CatalogClient for the local cache service
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new cache service client
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = maxIdlePerHost

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: logger,
	}
}

// BaseURL returns the normalized service root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs a GET against the cache service and returns the body of
// a 200 response
func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Debug("cache request failed", "url", reqURL, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: reqURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}

// FetchShard returns the items of one cache shard. Any non-success status is
// reported as domain.ErrShardNotFound.
func (c *Client) FetchShard(ctx context.Context, index int) ([]domain.Item, error) {
	body, err := c.doRequest(ctx, fmt.Sprintf("/cache/popular_page_%d.json", index))
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return nil, fmt.Errorf("%w: shard %d (status %d)", domain.ErrShardNotFound, index, statusErr.StatusCode)
		}
		return nil, err
	}

	var envelope shardEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse shard %d: %w", index, err)
	}

	results := bytes.TrimSpace(envelope.Results)
	if len(results) == 0 || results[0] != '[' {
		return nil, fmt.Errorf("%w: shard %d has no results", domain.ErrShardNotFound, index)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(results, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse shard %d results: %w", index, err)
	}

	items := make([]domain.Item, 0, len(raw))
	for i, r := range raw {
		var dto itemDTO
		if err := json.Unmarshal(r, &dto); err != nil {
			c.logger.Debug("skipping malformed item", "shard", index, "position", i, "error", err)
			continue
		}
		items = append(items, mapItem(dto))
	}

	return items, nil
}

// FetchDetail returns the detail document for one item
func (c *Client) FetchDetail(ctx context.Context, id domain.ID) (*domain.Detail, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("id required")
	}

	body, err := c.doRequest(ctx, "/cache/movie_"+url.PathEscape(id.String())+".json")
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
		}
		return nil, err
	}

	var dto detailDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse detail %s: %w", id, err)
	}

	return mapDetail(dto), nil
}

// FetchGenres returns the genre list. The cache serves either
// {"genres": [...]} or a bare array.
func (c *Client) FetchGenres(ctx context.Context) ([]domain.Genre, error) {
	body, err := c.doRequest(ctx, "/cache/genres.json")
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []genreDTO
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("failed to parse genres: %w", err)
		}
		return mapGenres(list), nil
	}

	var envelope genresEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse genres: %w", err)
	}
	return mapGenres(envelope.Genres), nil
}
