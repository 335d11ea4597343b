package driven

import (
	"context"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
)

// SQLGateway executes an already-validated SELECT against the hosted
// read-only SQL endpoint. One round trip, no retries.
//
// Implementations map the upstream unknown-column error envelope to
// domain.ErrUnknownColumn; all other upstream errors are surfaced
// verbatim wrapped in domain.ErrUpstream.
type SQLGateway interface {
	Execute(ctx context.Context, query string) (*domain.SQLResult, error)
}
