package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
	"github.com/worldfacts/catalog-mcp/internal/logger"
)

// DeepSearchInput is the input schema for the deep-research search tool.
type DeepSearchInput struct {
	Query string `json:"query" jsonschema:"search terms; country names in the query narrow fetched data"`
}

// DeepFetchInput is the input schema for the deep-research fetch tool.
type DeepFetchInput struct {
	ID string `json:"id" jsonschema:"a result id from search, a fully-qualified chart URL"`
}

// registerDeepResearchTools registers the constrained two-tool surface.
// Some clients require exactly these two tools with these exact names.
func (s *Server) registerDeepResearchTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the data catalog. Returns results whose ids are chart URLs usable with fetch",
	}, s.handleDeepSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fetch",
		Description: "Fetch a search result by id. Returns chart data as CSV, or a PNG for image URLs",
	}, s.handleDeepFetch)
}

func (s *Server) handleDeepSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeepSearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	rid := uuid.NewString()
	logger.Debug("[%s] search %q", rid, input.Query)

	results, err := s.ports.DeepResearch.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, SearchOutput{Results: results, Count: len(results)}, nil
}

func (s *Server) handleDeepFetch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeepFetchInput,
) (*mcp.CallToolResult, domain.FetchResult, error) {
	rid := uuid.NewString()
	logger.Debug("[%s] fetch %s", rid, input.ID)

	// Fetch never raises: failures come back as a result with
	// Metadata.Error set, so the client always sees a document.
	res := s.ports.DeepResearch.Fetch(ctx, input.ID)
	return nil, *res, nil
}
