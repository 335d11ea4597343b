// Package datasette implements the driven.SQLGateway port against a
// hosted read-only SQL-over-HTTP endpoint. One GET per query, no
// retries.
package datasette

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"golang.org/x/time/rate"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driven"
	"github.com/worldfacts/catalog-mcp/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SQLGateway = (*Client)(nil)

// unknownColumnPattern matches the engine's bracketed-quoted column
// error envelope, e.g. `['"population"']`.
var unknownColumnPattern = regexp.MustCompile(`\['"([^'"]+)"'\]`)

// Client is an HTTP client for the read-only SQL endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a SQL gateway client for the given endpoint URL
// (e.g. "https://datasette-public.example.org/catalog.json").
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(5), 2),
	}
}

// response is the endpoint's JSON envelope.
type response struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Error   *string  `json:"error"`
	OK      bool     `json:"ok"`
}

// Execute runs an already-validated SELECT and returns columnar
// results. Upstream unknown-column envelopes become
// domain.ErrUnknownColumn with the offending column named; every other
// upstream error is surfaced verbatim.
func (c *Client) Execute(ctx context.Context, query string) (*domain.SQLResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := c.endpoint + "?sql=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building sql request: %w", err)
	}

	logger.Debug("sql gateway: %s", query)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sql request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading sql response: %w", err)
	}

	// The endpoint reports SQL errors in the envelope with a non-2xx
	// status; decode first so the envelope error wins when present.
	var r response
	if decErr := json.Unmarshal(data, &r); decErr != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: sql endpoint returned %d", domain.ErrUpstream, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: malformed sql response: %v", domain.ErrUpstream, decErr)
	}

	if r.Error != nil && *r.Error != "" {
		if m := unknownColumnPattern.FindStringSubmatch(*r.Error); m != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownColumn, m[1])
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstream, *r.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: sql endpoint returned %d", domain.ErrUpstream, resp.StatusCode)
	}

	return &domain.SQLResult{
		Columns: r.Columns,
		Rows:    r.Rows,
		Source:  c.endpoint,
	}, nil
}
