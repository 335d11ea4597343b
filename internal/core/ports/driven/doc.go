// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them:
//
//   - SearchIndex: the external multi-tenant search index (Algolia adapter)
//   - SQLGateway: the hosted read-only SQL endpoint (Datasette adapter)
//   - ChartFetcher / PostFetcher / IndicatorAPI: site and API downloads (grapher adapter)
//   - BlobCache: optional on-disk cache for downloads; may be nil
//
// Everything here is read-only against external services. No interface
// performs a write anywhere.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
