package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driven"
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driving"
)

// Ensure SQLService implements the interface.
var _ driving.SQLService = (*SQLService)(nil)

// Row caps for the read-only SQL gateway.
const (
	MinSQLRows     = 1
	MaxSQLRows     = 5000
	DefaultSQLRows = 100
)

var (
	// selectPattern is the sole injection defense: the query must start
	// with SELECT. The rest of the SQL is not parsed or sanitised; the
	// endpoint itself is read-only.
	selectPattern = regexp.MustCompile(`(?i)^\s*select\b`)

	// trailingLimitPattern matches a trailing LIMIT clause, in either
	// the OFFSET form or the SQLite comma form, so the row count can be
	// rewritten without losing the offset. LIMITs inside subqueries are
	// left alone. Groups: comma-form offset, comma-form count, OFFSET
	// tail.
	trailingLimitPattern = regexp.MustCompile(`(?i)\blimit\s+(\d+)(?:\s*,\s*(\d+)|\s+(offset\s+\d+))?\s*;?\s*$`)
)

// SQLService validates and caps queries before handing them to the
// read-only gateway.
type SQLService struct {
	gateway driven.SQLGateway
}

// NewSQLService creates a SQL service.
func NewSQLService(gateway driven.SQLGateway) *SQLService {
	return &SQLService{gateway: gateway}
}

// RunSQL validates that query is a SELECT, rewrites or appends a LIMIT
// clause so at most maxRows rows come back, and executes it. Validation
// failures happen before any network call.
func (s *SQLService) RunSQL(ctx context.Context, query string, maxRows int) (*domain.SQLResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	if !selectPattern.MatchString(query) {
		return nil, fmt.Errorf("%w: got %q", domain.ErrNotSelect, firstWord(query))
	}

	capped := CapLimit(query, clampRows(maxRows))
	return s.gateway.Execute(ctx, capped)
}

// CapLimit ensures query carries a LIMIT whose row count is maxRows:
// an existing trailing LIMIT has its count rewritten to the cap with
// any offset preserved, otherwise a LIMIT is appended. In the comma
// form the count is the second number; with OFFSET it is the first.
func CapLimit(query string, maxRows int) string {
	trimmed := strings.TrimRight(strings.TrimSpace(query), ";")

	m := trailingLimitPattern.FindStringSubmatchIndex(trimmed)
	if m == nil {
		return fmt.Sprintf("%s LIMIT %d", trimmed, maxRows)
	}

	var clause string
	switch {
	case m[4] >= 0: // LIMIT offset, count
		clause = fmt.Sprintf("LIMIT %s, %d", trimmed[m[2]:m[3]], maxRows)
	case m[6] >= 0: // LIMIT count OFFSET n
		clause = fmt.Sprintf("LIMIT %d %s", maxRows, trimmed[m[6]:m[7]])
	default:
		clause = fmt.Sprintf("LIMIT %d", maxRows)
	}
	return trimmed[:m[0]] + clause
}

func clampRows(n int) int {
	if n < MinSQLRows {
		return DefaultSQLRows
	}
	if n > MaxSQLRows {
		return MaxSQLRows
	}
	return n
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
