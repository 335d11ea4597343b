package driven

import "context"

// ChartFetcher downloads chart payloads from fully-built grapher URLs.
type ChartFetcher interface {
	// FetchCSV downloads the CSV body at url.
	FetchCSV(ctx context.Context, url string) (string, error)

	// FetchPNG downloads the PNG body at url.
	FetchPNG(ctx context.Context, url string) ([]byte, error)
}

// PostFetcher retrieves the readable body of a published post.
type PostFetcher interface {
	FetchPost(ctx context.Context, slug string) (string, error)
}

// IndicatorAPI retrieves per-indicator documents from the catalog API.
// Both documents are passed through as decoded JSON objects; their
// schema belongs to the catalog, not to this layer.
type IndicatorAPI interface {
	IndicatorMetadata(ctx context.Context, id int) (map[string]any, error)
	IndicatorData(ctx context.Context, id int) (map[string]any, error)
}
