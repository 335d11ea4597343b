// Package domain defines the core business entities for catalog-mcp.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchHit: A raw record from the external search index
//   - NormalizedResult: The uniform search-result shape both tool surfaces return
//   - FetchResult: The payload returned by fetch-style tools
//   - ChartQueryParams: Per-request chart filter parameters
//   - Region: One entry of the static region-definitions collection
//
// All entities are request-scoped and transient; this layer owns no
// persistent storage.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
