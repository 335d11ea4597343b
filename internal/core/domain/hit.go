package domain

// HitType classifies a raw record returned by the search index.
type HitType string

// Known hit types.
const (
	HitTypeChart        HitType = "chart"
	HitTypeExplorerView HitType = "explorerView"
	HitTypePage         HitType = "page"
)

// SearchHit is a raw record returned by the external search index.
// It is request-scoped and never outlives the tool invocation that
// produced it.
type SearchHit struct {
	// Slug uniquely identifies a chart (e.g. "population-density").
	Slug string

	// Title is the chart or page title. May be empty; callers derive a
	// display title from the slug in that case.
	Title string

	// Subtitle is the highlighted snippet for the hit. Highlight spans
	// use literal <mark>...</mark> markers.
	Snippet string

	// AvailableEntities lists the entity names (countries, regions)
	// the chart has data for, in index order. Entries may carry
	// highlight markers.
	AvailableEntities []string

	// Type classifies the hit. Hits typed explorerView are excluded
	// before reaching callers: no stable CSV endpoint exists for them.
	Type HitType
}

// IndicatorHit is a raw indicator record returned by the search index.
// Score is positional: the index ranks, this layer reports the order.
type IndicatorHit struct {
	IndicatorID int
	Title       string
	Snippet     string
	Score       float64
}
