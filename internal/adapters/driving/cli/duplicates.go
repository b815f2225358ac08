package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates [module]",
	Short: "Find likely duplicate records",
	Long: `Group records that share a value on a text, email or phone field.
Values are compared ignoring case and repeated whitespace.

Groups are advisory; nothing is merged or removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runDuplicates,
}

var duplicatesJSON bool

func init() {
	duplicatesCmd.Flags().BoolVar(&duplicatesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(duplicatesCmd)
}

func runDuplicates(cmd *cobra.Command, args []string) error {
	if duplicateService == nil {
		return errors.New("duplicate service not configured")
	}

	moduleID := args[0]
	groups, err := duplicateService.Refresh(cmd.Context(), moduleID)
	if err != nil {
		return fmt.Errorf("duplicate check failed: %w", err)
	}

	if duplicatesJSON {
		return printJSON(cmd, groups)
	}

	if len(groups) == 0 {
		cmd.Printf("No duplicates found in %s.\n", moduleID)
		return nil
	}

	cmd.Printf("Possible duplicates in %s:\n\n", moduleID)
	for i := range groups {
		g := groups[i]
		cmd.Printf("  %s = %q\n", g.FieldLabel, g.Key)
		cmd.Printf("    Records: %s\n", strings.Join(g.RecordIDs, ", "))
		cmd.Println()
	}
	cmd.Printf("Total: %d groups\n", len(groups))
	return nil
}
