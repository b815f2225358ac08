package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recordbook/internal/adapters/driving/watch"
	"github.com/custodia-labs/recordbook/internal/core/ports/driving"
)

var importCmd = &cobra.Command{
	Use:   "import [module] [file]",
	Short: "Import records from a CSV, XLS or XLSX file",
	Long: `Append every non-blank row of a file to a module.

The first row is the header. Header cells name record fields as-is,
including columns that are not in the schema. An "id" column keeps its
values unless they are empty or already taken.`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

var importWatchCmd = &cobra.Command{
	Use:   "watch [module] [dir]",
	Short: "Import files dropped into a directory",
	Long: `Watch a directory and import each CSV, XLS or XLSX file created or
rewritten in it. Runs until interrupted.`,
	Args: cobra.ExactArgs(2),
	RunE: runImportWatch,
}

var exportCmd = &cobra.Command{
	Use:   "export [module]",
	Short: "Export records as CSV",
	Long: `Write a module's records as CSV. Columns follow the current field order.

Without --output the file is written to <module>-records.csv in the
current directory. Use --output - to write to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	exportOutput    string
	exportIncludeID bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file, - for stdout")
	exportCmd.Flags().BoolVar(&exportIncludeID, "include-id", false, "prepend the record id column")

	importCmd.AddCommand(importWatchCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if transferService == nil {
		return errors.New("transfer service not configured")
	}

	moduleID, path := args[0], args[1]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	result, err := transferService.Import(cmd.Context(), moduleID, filepath.Base(path), f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	printImportResult(cmd, result)
	return nil
}

func printImportResult(cmd *cobra.Command, result *driving.ImportResult) {
	cmd.Printf("Imported %d records into %s from %s.\n", result.Imported, result.ModuleID, result.FileName)
	if result.SkippedEmpty > 0 {
		cmd.Printf("  Skipped %d blank rows.\n", result.SkippedEmpty)
	}
	if result.RegeneratedIDs > 0 {
		cmd.Printf("  Assigned new ids to %d rows with empty or taken ids.\n", result.RegeneratedIDs)
	}
	if len(result.UnknownColumns) > 0 {
		cmd.Printf("  Columns not in the schema: %s\n", strings.Join(result.UnknownColumns, ", "))
	}
}

func runImportWatch(cmd *cobra.Command, args []string) error {
	if transferService == nil || tabularFormats == nil {
		return errors.New("transfer service not configured")
	}

	moduleID, dir := args[0], args[1]
	if moduleService != nil {
		if _, err := moduleService.Get(cmd.Context(), moduleID); err != nil {
			return fmt.Errorf("failed to watch: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	w := watch.New(transferService, tabularFormats, moduleID, dir,
		watch.WithOnImport(func(r watch.Result) {
			if r.Err != nil {
				cmd.PrintErrf("Failed to import %s: %v\n", filepath.Base(r.Path), r.Err)
				return
			}
			printImportResult(cmd, r.Import)
		}),
	)

	cmd.Printf("Watching %s for %s imports. Press Ctrl+C to stop.\n", dir, moduleID)
	return w.Run(ctx)
}

func runExport(cmd *cobra.Command, args []string) error {
	if transferService == nil {
		return errors.New("transfer service not configured")
	}

	moduleID := args[0]
	result, err := transferService.Export(cmd.Context(), moduleID, driving.ExportOptions{IncludeID: exportIncludeID})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if exportOutput == "-" {
		_, err := cmd.OutOrStdout().Write(result.Data)
		return err
	}

	path := exportOutput
	if path == "" {
		path = result.FileName
	}
	if err := os.WriteFile(path, result.Data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	cmd.Printf("Exported %d records from %s to %s.\n", result.Rows, moduleID, path)
	return nil
}
