// Package algolia implements the driven.SearchIndex port against a
// hosted Algolia application. One POST per search, no retries: the
// caller decides whether a failure is worth retrying.
package algolia

import (
	"bytes"
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

// Ensure Client implements the interface.
var _ driven.SearchIndex = (*Client)(nil)

const (
	// MinLimit and MaxLimit bound hitsPerPage for every query.
	MinLimit = 1
	MaxLimit = 60

	// queriesPath is the multi-query endpoint. The wildcard index name
	// is fixed: the per-request indexName selects the actual index.
	queriesPath = "/1/indexes/*/queries"

	// incomeGroupFacetFilter excludes income-group-specific chart
	// variants from chart searches.
	incomeGroupFacetFilter = "isIncomeGroupSpecificFM:false"

	// proactive throttle for outbound search calls.
	searchRate  = 10
	searchBurst = 5
)

// Options configures a Client.
type Options struct {
	Host            string
	AppID           string
	APIKey          string
	ChartsIndex     string
	PagesIndex      string
	IndicatorsIndex string
	Timeout         time.Duration
}

// Client is an HTTP client for the search index.
type Client struct {
	opts       Options
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a search-index client.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		opts:       opts,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(searchRate), searchBurst),
	}
}

// request is one entry of the multi-query envelope.
type request struct {
	IndexName            string   `json:"indexName"`
	Query                string   `json:"query"`
	HitsPerPage          int      `json:"hitsPerPage"`
	FacetFilters         []string `json:"facetFilters,omitempty"`
	AttributesToRetrieve []string `json:"attributesToRetrieve,omitempty"`
	AttributesToSnippet  []string `json:"attributesToSnippet,omitempty"`
}

// rawHit carries every attribute any of the three indexes may return.
type rawHit struct {
	ObjectID          string   `json:"objectID"`
	Slug              string   `json:"slug"`
	Title             string   `json:"title"`
	Subtitle          string   `json:"subtitle"`
	Excerpt           string   `json:"excerpt"`
	Type              string   `json:"type"`
	AvailableEntities []string `json:"availableEntities"`
	VariableID        int      `json:"variableId"`
	SnippetResult     struct {
		Subtitle struct {
			Value string `json:"value"`
		} `json:"subtitle"`
		Excerpt struct {
			Value string `json:"value"`
		} `json:"excerpt"`
	} `json:"_snippetResult"`
}

type envelope struct {
	Results []struct {
		Hits []rawHit `json:"hits"`
	} `json:"results"`
}

// SearchCharts queries the charts index. explorerView hits are removed
// before returning: no stable CSV endpoint exists for them.
func (c *Client) SearchCharts(ctx context.Context, query string, limit int) ([]domain.SearchHit, error) {
	hits, err := c.search(ctx, request{
		IndexName:            c.opts.ChartsIndex,
		Query:                query,
		HitsPerPage:          clampLimit(limit),
		FacetFilters:         []string{incomeGroupFacetFilter},
		AttributesToRetrieve: []string{"slug", "title", "subtitle", "type", "availableEntities"},
		AttributesToSnippet:  []string{"subtitle:24"},
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.SearchHit, 0, len(hits))
	for _, h := range hits {
		if h.Type == string(domain.HitTypeExplorerView) {
			continue
		}
		out = append(out, toSearchHit(h))
	}
	logger.Debug("chart search %q: %d hits after filtering", query, len(out))
	return out, nil
}

// SearchPages queries the pages index.
func (c *Client) SearchPages(ctx context.Context, query string, limit int) ([]domain.SearchHit, error) {
	hits, err := c.search(ctx, request{
		IndexName:            c.opts.PagesIndex,
		Query:                query,
		HitsPerPage:          clampLimit(limit),
		AttributesToRetrieve: []string{"slug", "title", "excerpt", "type"},
		AttributesToSnippet:  []string{"excerpt:24"},
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.SearchHit, 0, len(hits))
	for _, h := range hits {
		out = append(out, toSearchHit(h))
	}
	return out, nil
}

// SearchIndicators queries the indicators index. Scores are positional:
// the index ranks, this layer only reports the ordering.
func (c *Client) SearchIndicators(ctx context.Context, query string, limit int) ([]domain.IndicatorHit, error) {
	hits, err := c.search(ctx, request{
		IndexName:            c.opts.IndicatorsIndex,
		Query:                query,
		HitsPerPage:          clampLimit(limit),
		AttributesToRetrieve: []string{"variableId", "title", "subtitle"},
		AttributesToSnippet:  []string{"subtitle:24"},
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.IndicatorHit, 0, len(hits))
	for i, h := range hits {
		out = append(out, domain.IndicatorHit{
			IndicatorID: h.VariableID,
			Title:       h.Title,
			Snippet:     snippetOf(h),
			Score:       positionalScore(i),
		})
	}
	return out, nil
}

// search issues one multi-query POST and unwraps the single result block.
func (c *Client) search(ctx context.Context, req request) ([]rawHit, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]any{"requests": []request{req}})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	url := strings.TrimSuffix(c.opts.Host, "/") + queriesPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Algolia-Application-Id", c.opts.AppID)
	httpReq.Header.Set("X-Algolia-API-Key", c.opts.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading search response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: search index returned %d: %s",
			domain.ErrUpstream, resp.StatusCode, truncate(string(data), 200))
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: malformed search envelope: %v", domain.ErrUpstream, err)
	}
	if len(env.Results) == 0 {
		return nil, fmt.Errorf("%w: search envelope has no result block", domain.ErrUpstream)
	}

	return env.Results[0].Hits, nil
}

func toSearchHit(h rawHit) domain.SearchHit {
	return domain.SearchHit{
		Slug:              h.Slug,
		Title:             h.Title,
		Snippet:           snippetOf(h),
		AvailableEntities: h.AvailableEntities,
		Type:              domain.HitType(h.Type),
	}
}

// snippetOf prefers the index-provided snippet and falls back to the
// full subtitle or excerpt.
func snippetOf(h rawHit) string {
	if v := h.SnippetResult.Subtitle.Value; v != "" {
		return v
	}
	if v := h.SnippetResult.Excerpt.Value; v != "" {
		return v
	}
	if h.Subtitle != "" {
		return h.Subtitle
	}
	return h.Excerpt
}

// positionalScore maps rank to a descending score in (0, 1].
func positionalScore(i int) float64 {
	return 1.0 / float64(i+1)
}

func clampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
