// Package mcp provides the MCP (Model Context Protocol) server
// adapters for catalog-mcp. Two tool surfaces are composed from the
// same underlying services: a rich surface for general MCP clients and
// a constrained two-tool deep-research surface with a fixed external
// contract.
package mcp

import "errors"

var (
	// ErrMissingChartService is returned when the chart service is not provided.
	ErrMissingChartService = errors.New("mcp: chart service is required")

	// ErrMissingSQLService is returned when the SQL service is not provided.
	ErrMissingSQLService = errors.New("mcp: sql service is required")

	// ErrMissingDeepResearchService is returned when the deep-research
	// service is not provided.
	ErrMissingDeepResearchService = errors.New("mcp: deep research service is required")
)
