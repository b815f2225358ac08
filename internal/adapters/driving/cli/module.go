package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var moduleCmd = &cobra.Command{
	Use:   "module",
	Short: "Inspect record modules",
	Long:  `List the built-in modules and show their field, record and duplicate counts.`,
}

var moduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List modules",
	Args:  cobra.NoArgs,
	RunE:  runModuleList,
}

var moduleShowCmd = &cobra.Command{
	Use:   "show [module]",
	Short: "Show module details",
	Args:  cobra.ExactArgs(1),
	RunE:  runModuleShow,
}

var moduleJSON bool

func init() {
	moduleListCmd.Flags().BoolVar(&moduleJSON, "json", false, "output as JSON")
	moduleCmd.AddCommand(moduleListCmd)
	moduleCmd.AddCommand(moduleShowCmd)
	rootCmd.AddCommand(moduleCmd)
}

func runModuleList(cmd *cobra.Command, _ []string) error {
	if moduleService == nil {
		return errors.New("module service not configured")
	}

	summaries, err := moduleService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list modules: %w", err)
	}

	if moduleJSON {
		return printJSON(cmd, summaries)
	}

	cmd.Println("Modules:")
	cmd.Println()
	for i := range summaries {
		m := summaries[i].Module
		cmd.Printf("  %s\n", m.ID)
		cmd.Printf("    Name: %s\n", m.Name)
		cmd.Printf("    Fields: %d  Records: %d\n", summaries[i].FieldCount, summaries[i].RecordCount)
		cmd.Println()
	}
	return nil
}

func runModuleShow(cmd *cobra.Command, args []string) error {
	if moduleService == nil {
		return errors.New("module service not configured")
	}

	summary, err := moduleService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get module: %w", err)
	}

	m := summary.Module
	cmd.Printf("Module: %s\n\n", m.ID)
	cmd.Printf("  Name:        %s\n", m.Name)
	cmd.Printf("  Description: %s\n", m.Description)
	cmd.Printf("  Icon:        %s\n", m.Icon)
	cmd.Printf("  Fields:      %d\n", summary.FieldCount)
	cmd.Printf("  Records:     %d\n", summary.RecordCount)
	cmd.Printf("  Duplicates:  %d (from last check)\n", summary.DuplicateCount)
	if len(m.Prompts) > 0 {
		cmd.Println("\n  Try asking:")
		cmd.Printf("    %s\n", strings.Join(m.Prompts, "\n    "))
	}
	return nil
}
