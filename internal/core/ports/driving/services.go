package driving

import (
	"context"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
)

// ChartService provides chart search and fetch for the rich tool
// surface. IDs are stable slugs; URLs are built at fetch time.
type ChartService interface {
	// SearchCharts returns normalized chart results. Result IDs are
	// slugs and URLs are interactive grapher links.
	SearchCharts(ctx context.Context, query string, limit int) ([]domain.NormalizedResult, error)

	// FetchChartData downloads and normalizes the chart's CSV. The
	// timeRange is a grapher time expression; countries are free-text
	// entity names resolved to codes (unresolvable names are ignored).
	FetchChartData(ctx context.Context, slug, timeRange string, countries []string) (*domain.FetchResult, error)

	// FetchChartImage downloads the chart's PNG rendering.
	FetchChartImage(ctx context.Context, slug, timeRange string, countries []string) ([]byte, *domain.FetchResult, error)
}

// IndicatorService provides indicator search and data fetch.
type IndicatorService interface {
	SearchIndicators(ctx context.Context, query string, limit int) ([]domain.IndicatorHit, error)

	// FetchIndicatorData returns the indicator's metadata and data
	// documents, optionally filtered to a single entity.
	FetchIndicatorData(ctx context.Context, indicatorID int, entity string) (*domain.IndicatorData, error)
}

// PostService provides search and fetch over published posts.
type PostService interface {
	SearchPosts(ctx context.Context, query string, limit int) ([]domain.NormalizedResult, error)
	FetchPost(ctx context.Context, slug string) (*domain.FetchResult, error)
}

// SQLService runs validated read-only queries against the catalog.
type SQLService interface {
	// RunSQL validates that query is a SELECT, caps its LIMIT at
	// maxRows (clamped to [1, 5000]) and executes it.
	RunSQL(ctx context.Context, query string, maxRows int) (*domain.SQLResult, error)
}

// DeepResearchService is the constrained two-tool contract. IDs are
// fully-qualified URLs, and Fetch reports every failure as a result
// with Metadata.Error set rather than returning an error: the external
// contract for this surface does not allow raising.
type DeepResearchService interface {
	Search(ctx context.Context, query string) ([]domain.NormalizedResult, error)
	Fetch(ctx context.Context, id string) *domain.FetchResult
}
