package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worldfacts/catalog-mcp/internal/adapters/driving/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants. Use
--port to serve over HTTP instead, and --deep-research to expose the
constrained two-tool surface (search/fetch) some research clients
require.

Examples:
  # Stdio mode (default, for desktop assistants)
  catalog-mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  catalog-mcp serve --port 8080

  # Deep-research surface over HTTP
  catalog-mcp serve --port 8080 --deep-research

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "catalog": {
        "command": "/path/to/catalog-mcp",
        "args": ["serve"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	serveCmd.Flags().Bool("deep-research", false, "expose only the search/fetch tool pair")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	deepResearch, err := cmd.Flags().GetBool("deep-research")
	if err != nil {
		return fmt.Errorf("getting deep-research flag: %w", err)
	}

	ports := &mcp.Ports{
		Charts:       chartService,
		Indicators:   indicatorService,
		Posts:        postService,
		SQL:          sqlService,
		DeepResearch: deepResearchService,
	}

	var server *mcp.Server
	if deepResearch {
		server, err = mcp.NewDeepResearchServer(ports)
	} else {
		server, err = mcp.NewServer(ports)
	}
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
