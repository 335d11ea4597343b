package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driven"
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driving"
	"github.com/worldfacts/catalog-mcp/internal/logger"
	"github.com/worldfacts/catalog-mcp/internal/normalisers/tabular"
)

// Ensure DeepResearchService implements the interface.
var _ driving.DeepResearchService = (*DeepResearchService)(nil)

// deepResearchLimit is the fixed result count for the constrained
// surface; its consumer paginates by reformulating queries, not by
// passing a limit.
const deepResearchLimit = 10

// DeepResearchService implements the constrained two-tool contract.
//
// Result IDs are fully-qualified CSV download URLs, pre-filtered by
// whatever entities the query mentions, because the downstream consumer
// treats IDs as opaque fetch keys with no separate resolution step.
// This deliberately differs from the rich surface's slug IDs.
type DeepResearchService struct {
	index   driven.SearchIndex
	fetcher driven.ChartFetcher
	regions *Regions
	siteURL string
}

// NewDeepResearchService creates the constrained-surface service.
func NewDeepResearchService(index driven.SearchIndex, fetcher driven.ChartFetcher, regions *Regions, siteURL string) *DeepResearchService {
	return &DeepResearchService{
		index:   index,
		fetcher: fetcher,
		regions: regions,
		siteURL: siteURL,
	}
}

// Search returns chart results whose IDs are self-contained CSV URLs.
func (s *DeepResearchService) Search(ctx context.Context, query string) ([]domain.NormalizedResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.NormalizedResult{}, nil
	}

	hits, err := s.index.SearchCharts(ctx, query, deepResearchLimit)
	if err != nil {
		return nil, fmt.Errorf("searching charts: %w", err)
	}

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

		params := domain.ChartQueryParams{
			CountryCodes: s.entitiesInQuery(query, h.AvailableEntities),
		}
		out = append(out, domain.NormalizedResult{
			ID:    domain.BuildChartURL(s.siteURL, h.Slug, domain.URLCSV, params),
			Title: title,
			Text:  text,
			URL:   domain.BuildChartURL(s.siteURL, h.Slug, domain.URLInteractive, domain.ChartQueryParams{}),
		})
	}
	return out, nil
}

// entitiesInQuery returns codes for the chart's available entities that
// the query mentions, preserving the chart's entity order.
func (s *DeepResearchService) entitiesInQuery(query string, available []string) []string {
	queryLower := strings.ToLower(query)
	var codes []string
	for _, raw := range available {
		name := domain.StripHighlight(raw)
		if name == "" || !strings.Contains(queryLower, strings.ToLower(name)) {
			continue
		}
		if code, ok := s.regions.Resolve(name); ok {
			codes = append(codes, code)
		}
	}
	return codes
}

// Fetch downloads the payload behind id. Per the surface's external
// contract it never raises: every failure, including a malformed id,
// comes back as a result with Metadata.Error set and empty text.
func (s *DeepResearchService) Fetch(ctx context.Context, id string) *domain.FetchResult {
	if !strings.HasPrefix(id, "http") {
		return errorResult(id, "id must be a fully-qualified URL starting with http")
	}

	parsed, err := url.Parse(id)
	if err != nil {
		return errorResult(id, fmt.Sprintf("unparseable id: %v", err))
	}

	slug := slugFromPath(parsed.Path)
	title := domain.TitleFromSlug(slug)
	interactive := domain.BuildChartURL(s.siteURL, slug, domain.URLInteractive, domain.ChartQueryParams{})

	if strings.HasSuffix(parsed.Path, ".png") {
		data, err := s.fetcher.FetchPNG(ctx, id)
		if err != nil {
			logger.Warn("deep research fetch %s: %v", id, err)
			return errorResult(id, err.Error())
		}
		return &domain.FetchResult{
			ID:    id,
			Title: title,
			Text:  base64.StdEncoding.EncodeToString(data),
			URL:   interactive,
			Metadata: domain.FetchMetadata{
				MIME:      "image/png",
				Encoding:  "base64",
				SizeBytes: len(data),
			},
		}
	}

	raw, err := s.fetcher.FetchCSV(ctx, id)
	if err != nil {
		logger.Warn("deep research fetch %s: %v", id, err)
		return errorResult(id, err.Error())
	}

	processed, stats := tabular.Normalize(raw)
	return &domain.FetchResult{
		ID:    id,
		Title: title,
		Text:  processed,
		URL:   interactive,
		Metadata: domain.FetchMetadata{
			MIME:       "text/csv",
			Encoding:   "utf-8",
			SizeBytes:  len(processed),
			Rows:       stats.Rows,
			Columns:    stats.Columns,
			TimeFilter: parsed.Query().Get("time"),
			Error:      stats.ParseError,
		},
	}
}

// slugFromPath extracts the chart slug from a grapher URL path like
// /grapher/population-density.csv.
func slugFromPath(path string) string {
	base := path[strings.LastIndex(path, "/")+1:]
	base = strings.TrimSuffix(base, ".csv")
	base = strings.TrimSuffix(base, ".png")
	return base
}

func errorResult(id, msg string) *domain.FetchResult {
	return &domain.FetchResult{
		ID:       id,
		Metadata: domain.FetchMetadata{Error: msg},
	}
}
