package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worldfacts/catalog-mcp/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
	searchKind  string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog from the command line",
	Long: `Searches the catalog's charts or posts and prints the results.
Useful for checking what the MCP tools would return for a query.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchKind, "kind", "charts", "what to search: charts or posts")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := cmd.Context()

	var (
		results []domain.NormalizedResult
		err     error
	)
	switch searchKind {
	case "charts":
		if chartService == nil {
			return errors.New("chart service not configured")
		}
		results, err = chartService.SearchCharts(ctx, query, searchLimit)
	case "posts":
		if postService == nil {
			return errors.New("post service not configured")
		}
		results, err = postService.SearchPosts(ctx, query, searchLimit)
	default:
		return fmt.Errorf("unknown kind %q (use charts or posts)", searchKind)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s\n", i+1, results[i].Title)
		cmd.Printf("      %s\n", results[i].URL)
		if results[i].Text != "" {
			cmd.Printf("      %s\n", results[i].Text)
		}
		cmd.Println()
	}

	return nil
}
