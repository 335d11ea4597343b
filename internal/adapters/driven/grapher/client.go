// Package grapher downloads chart, post and indicator payloads from
// the charting site and its data API. It implements the
// driven.ChartFetcher, driven.PostFetcher and driven.IndicatorAPI
// ports, optionally backed by a read-through blob cache.
package grapher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driven"
	"github.com/worldfacts/catalog-mcp/internal/logger"
)

// Ensure Client implements the ports.
var (
	_ driven.ChartFetcher = (*Client)(nil)
	_ driven.PostFetcher  = (*Client)(nil)
	_ driven.IndicatorAPI = (*Client)(nil)
)

// maxBodySize caps any single download at 64 MiB. Chart CSVs and PNGs
// are far below this; the cap only guards against pathological bodies.
const maxBodySize = 64 << 20

// Client downloads payloads over plain HTTP GET. No retries.
type Client struct {
	siteURL    string
	apiURL     string
	httpClient *http.Client
	limiter    *rate.Limiter

	// cache may be nil; a nil cache behaves like a permanent miss.
	cache driven.BlobCache
}

// NewClient creates a downloads client. cache may be nil.
func NewClient(siteURL, apiURL string, timeout time.Duration, cache driven.BlobCache) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		siteURL:    strings.TrimSuffix(siteURL, "/"),
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(5), 2),
		cache:      cache,
	}
}

// FetchCSV downloads the CSV body at url.
func (c *Client) FetchCSV(ctx context.Context, url string) (string, error) {
	data, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FetchPNG downloads the PNG body at url.
func (c *Client) FetchPNG(ctx context.Context, url string) ([]byte, error) {
	return c.get(ctx, url)
}

// FetchPost retrieves the readable body of a published post.
func (c *Client) FetchPost(ctx context.Context, slug string) (string, error) {
	data, err := c.get(ctx, c.siteURL+"/"+slug)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// IndicatorMetadata retrieves the indicator's metadata document.
func (c *Client) IndicatorMetadata(ctx context.Context, id int) (map[string]any, error) {
	return c.getJSON(ctx, fmt.Sprintf("%s/indicators/%d.metadata.json", c.apiURL, id))
}

// IndicatorData retrieves the indicator's value series document.
func (c *Client) IndicatorData(ctx context.Context, id int) (map[string]any, error) {
	return c.getJSON(ctx, fmt.Sprintf("%s/indicators/%d.data.json", c.apiURL, id))
}

func (c *Client) getJSON(ctx context.Context, url string) (map[string]any, error) {
	data, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON from %s: %v", domain.ErrUpstream, url, err)
	}
	return out, nil
}

// get performs one cached GET. Cache failures degrade to a plain
// network fetch; they never fail the download.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if c.cache != nil {
		if data, ok, err := c.cache.Get(ctx, url); err == nil && ok {
			logger.Debug("cache hit: %s", url)
			return data, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, url)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned %d", domain.ErrUpstream, url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, url, data); err != nil {
			logger.Warn("cache put failed for %s: %v", url, err)
		}
	}

	return data, nil
}
