package domain

// NormalizedResult is the uniform search-result shape returned by both
// tool surfaces.
//
// ID semantics differ per surface and intentionally stay inconsistent:
// the rich surface uses stable slugs and builds URLs at fetch time,
// while the deep-research surface uses fully-qualified fetchable URLs
// because its consumer treats ID as an opaque fetch key.
type NormalizedResult struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// FetchMetadata describes a fetched payload. Rows, Columns and
// TimeFilter are only set for tabular payloads; Error is only set on
// the deep-research surface, which reports failures as data instead of
// raising.
type FetchMetadata struct {
	MIME       string `json:"mime,omitempty"`
	Encoding   string `json:"encoding,omitempty"`
	SizeBytes  int    `json:"size_bytes,omitempty"`
	Rows       int    `json:"rows,omitempty"`
	Columns    int    `json:"columns,omitempty"`
	TimeFilter string `json:"time_filter,omitempty"`
	Error      string `json:"error,omitempty"`
}

// FetchResult is the payload returned by fetch-style tools.
type FetchResult struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Text     string        `json:"text"`
	URL      string        `json:"url"`
	Metadata FetchMetadata `json:"metadata"`
}

// SQLResult holds columnar output from the read-only SQL gateway.
type SQLResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Source  string   `json:"source"`
}

// IndicatorData is the payload returned for a single indicator: its
// catalog metadata document plus the value series, both passed through
// from the indicator API as-is.
type IndicatorData struct {
	Metadata map[string]any `json:"metadata"`
	Data     map[string]any `json:"data"`
}
