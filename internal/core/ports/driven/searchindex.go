package driven

import (
	"context"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
)

// SearchIndex queries the external multi-tenant search index.
// Implementations issue a single POST per call and do not retry;
// the caller decides whether a failure is worth retrying.
type SearchIndex interface {
	// SearchCharts returns chart hits for a free-text query. Limit is
	// clamped to [1, 60]. Hits typed explorerView are already removed.
	SearchCharts(ctx context.Context, query string, limit int) ([]domain.SearchHit, error)

	// SearchPages returns page (post) hits for a free-text query.
	SearchPages(ctx context.Context, query string, limit int) ([]domain.SearchHit, error)

	// SearchIndicators returns indicator hits for a free-text query.
	SearchIndicators(ctx context.Context, query string, limit int) ([]domain.IndicatorHit, error)
}
