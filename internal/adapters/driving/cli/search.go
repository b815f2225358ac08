package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [module] [query]",
	Short: "Search records by keyword",
	Long: `Finds records containing the query words in any field, including the id.
Records matching more words rank first. Matching ignores case.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 uses search.limit)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil || schemaService == nil {
		return errors.New("search service not configured")
	}

	moduleID := args[0]
	query := strings.Join(args[1:], " ")
	ctx := cmd.Context()

	results, err := searchService.Search(ctx, moduleID, query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, results)
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	fields, err := schemaService.Fields(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("failed to list fields: %w", err)
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s (%d)\n", i+1, results[i].Record.ID, results[i].Score)
		printValues(cmd, fields, results[i].Record, 60)
		cmd.Println()
	}
	return nil
}
