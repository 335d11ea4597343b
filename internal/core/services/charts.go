package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driven"
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driving"
	"github.com/worldfacts/catalog-mcp/internal/logger"
	"github.com/worldfacts/catalog-mcp/internal/normalisers/tabular"
)

// Ensure ChartService implements the interface.
var _ driving.ChartService = (*ChartService)(nil)

// maxSnippetLen bounds the text carried in search results.
const maxSnippetLen = 300

// ChartService provides chart search and fetch for the rich surface.
type ChartService struct {
	index   driven.SearchIndex
	fetcher driven.ChartFetcher
	regions *Regions
	siteURL string
}

// NewChartService creates a chart service.
func NewChartService(index driven.SearchIndex, fetcher driven.ChartFetcher, regions *Regions, siteURL string) *ChartService {
	return &ChartService{
		index:   index,
		fetcher: fetcher,
		regions: regions,
		siteURL: siteURL,
	}
}

// SearchCharts returns normalized chart results. IDs are stable slugs;
// URLs are interactive grapher links built at search time for display
// only.
func (s *ChartService) SearchCharts(ctx context.Context, query string, limit int) ([]domain.NormalizedResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.NormalizedResult{}, nil
	}

	hits, err := s.index.SearchCharts(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching charts: %w", err)
	}

	return normalizeHits(hits, s.siteURL), nil
}

// normalizeHits maps raw hits to the uniform result shape, dropping
// duplicate slugs (the index can return a chart more than once when it
// matches on several attributes).
func normalizeHits(hits []domain.SearchHit, siteURL string) []domain.NormalizedResult {
	out := make([]domain.NormalizedResult, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	for _, h := range hits {
		if _, dup := seen[h.Slug]; dup || h.Slug == "" {
			continue
		}
		seen[h.Slug] = struct{}{}

		title := h.Title
		if title == "" {
			title = domain.TitleFromSlug(h.Slug)
		}
		text := truncateSnippet(domain.StripHighlight(h.Snippet))
		if text == "" {
			text = title
		}

		out = append(out, domain.NormalizedResult{
			ID:    h.Slug,
			Title: title,
			Text:  text,
			URL:   domain.BuildChartURL(siteURL, h.Slug, domain.URLInteractive, domain.ChartQueryParams{}),
		})
	}
	return out
}

// FetchChartData downloads and normalizes the chart's CSV.
func (s *ChartService) FetchChartData(ctx context.Context, slug, timeRange string, countries []string) (*domain.FetchResult, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}

	params := domain.ChartQueryParams{
		Time:         timeRange,
		CountryCodes: s.regions.ResolveAll(countries),
	}
	csvURL := domain.BuildChartURL(s.siteURL, slug, domain.URLCSV, params)

	raw, err := s.fetcher.FetchCSV(ctx, csvURL)
	if err != nil {
		return nil, fmt.Errorf("fetching chart data: %w", err)
	}

	processed, stats := tabular.Normalize(raw)
	if stats.ParseError != "" {
		logger.Warn("chart %s: csv passed through unprocessed: %s", slug, stats.ParseError)
	}

	return &domain.FetchResult{
		ID:    slug,
		Title: domain.TitleFromSlug(slug),
		Text:  processed,
		URL:   domain.BuildChartURL(s.siteURL, slug, domain.URLInteractive, domain.ChartQueryParams{}),
		Metadata: domain.FetchMetadata{
			MIME:       "text/csv",
			Encoding:   "utf-8",
			SizeBytes:  len(processed),
			Rows:       stats.Rows,
			Columns:    stats.Columns,
			TimeFilter: timeRange,
			Error:      stats.ParseError,
		},
	}, nil
}

// FetchChartImage downloads the chart's PNG rendering. The returned
// FetchResult carries base64 text so callers that cannot transport
// binary content still get the payload.
func (s *ChartService) FetchChartImage(ctx context.Context, slug, timeRange string, countries []string) ([]byte, *domain.FetchResult, error) {
	if slug == "" {
		return nil, nil, fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}

	params := domain.ChartQueryParams{
		Time:         timeRange,
		CountryCodes: s.regions.ResolveAll(countries),
	}
	pngURL := domain.BuildChartURL(s.siteURL, slug, domain.URLPNG, params)

	data, err := s.fetcher.FetchPNG(ctx, pngURL)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching chart image: %w", err)
	}

	return data, &domain.FetchResult{
		ID:    slug,
		Title: domain.TitleFromSlug(slug),
		Text:  base64.StdEncoding.EncodeToString(data),
		URL:   domain.BuildChartURL(s.siteURL, slug, domain.URLInteractive, domain.ChartQueryParams{}),
		Metadata: domain.FetchMetadata{
			MIME:      "image/png",
			Encoding:  "base64",
			SizeBytes: len(data),
		},
	}, nil
}

// truncateSnippet cuts at a rune boundary so multibyte text never
// yields invalid UTF-8.
func truncateSnippet(s string) string {
	if len(s) <= maxSnippetLen {
		return s
	}
	cut := maxSnippetLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
