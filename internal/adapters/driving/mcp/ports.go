package mcp

import (
	"github.com/worldfacts/catalog-mcp/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP
// servers. This provides a single injection point for dependency
// injection.
type Ports struct {
	// Charts provides chart search and fetch.
	Charts driving.ChartService

	// Indicators provides indicator search and data fetch.
	Indicators driving.IndicatorService

	// Posts provides post search and fetch.
	Posts driving.PostService

	// SQL runs validated read-only queries.
	SQL driving.SQLService

	// DeepResearch backs the constrained two-tool surface.
	DeepResearch driving.DeepResearchService
}

// ValidateRich ensures every port the rich surface registers tools for
// is set.
func (p *Ports) ValidateRich() error {
	if p.Charts == nil {
		return ErrMissingChartService
	}
	if p.SQL == nil {
		return ErrMissingSQLService
	}
	// Indicators and Posts are optional: their tools are simply not
	// registered when absent.
	return nil
}

// ValidateDeepResearch ensures the constrained surface can be built.
func (p *Ports) ValidateDeepResearch() error {
	if p.DeepResearch == nil {
		return ErrMissingDeepResearchService
	}
	return nil
}
