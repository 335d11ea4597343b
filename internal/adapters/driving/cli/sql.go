package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sqlMaxRows int

var sqlCmd = &cobra.Command{
	Use:   "sql [query]",
	Short: "Run a read-only SELECT against the catalog database",
	Long: `Runs a SELECT statement against the public catalog database and
prints the result as JSON. Only SELECT statements are accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: runSQL,
}

func init() {
	sqlCmd.Flags().IntVarP(&sqlMaxRows, "max-rows", "n", 100, "row cap between 1 and 5000")
	rootCmd.AddCommand(sqlCmd)
}

func runSQL(cmd *cobra.Command, args []string) error {
	if sqlService == nil {
		return errors.New("sql service not configured")
	}

	result, err := sqlService.RunSQL(cmd.Context(), args[0], sqlMaxRows)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
