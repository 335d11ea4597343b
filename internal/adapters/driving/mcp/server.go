package mcp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.3.0"

// Per-module instruction text. The rich surface merges every block so
// a capability-discovery listing documents each tool's intended query
// style.
const (
	chartInstructions = `Chart tools: search_chart finds interactive charts by topic. Use short,
concept-only search terms ("life expectancy", "co2 emissions"), not full
questions. Pass country names via the countries argument of the fetch
tools rather than embedding them in the query.`

	indicatorInstructions = `Indicator tools: search_indicator finds individual data series by name.
fetch_indicator_data returns the full metadata and value series; pass an
entity name to narrow the series to one country or region.`

	postInstructions = `Post tools: search_posts finds written articles. Always include country
names in the query when a country-specific answer matters.`

	sqlInstructions = `run_sql executes a read-only SELECT against the public catalog database.
Only SELECT statements are accepted and results are capped at max_rows.`

	deepResearchInstructions = `Two tools are available. search(query) returns results whose id is a
fetchable URL; pass an id unchanged to fetch(id) to retrieve the data.
Use short, concept-only search terms and include country names in the
query when a country-specific answer matters.`
)

// Server wraps an MCP server exposing one of the two tool surfaces.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates the rich MCP server for general clients: multiple
// tools, slug IDs, structured outputs.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.ValidateRich(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	instructions := []string{chartInstructions, sqlInstructions}
	if ports.Indicators != nil {
		instructions = append(instructions, indicatorInstructions)
	}
	if ports.Posts != nil {
		instructions = append(instructions, postInstructions)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "catalog-mcp",
			Version: Version,
		}, &mcp.ServerOptions{
			Instructions: strings.Join(instructions, "\n\n"),
		}),
	}

	s.registerRichTools()

	return s, nil
}

// NewDeepResearchServer creates the constrained surface: exactly two
// tools, search and fetch, with a fixed response contract.
func NewDeepResearchServer(ports *Ports) (*Server, error) {
	if err := ports.ValidateDeepResearch(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "catalog-mcp-deep-research",
			Version: Version,
		}, &mcp.ServerOptions{
			Instructions: deepResearchInstructions,
		}),
	}

	s.registerDeepResearchTools()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
