// Package cli provides the cobra command tree for recordbook.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recordbook/internal/core/ports/driven"
	"github.com/custodia-labs/recordbook/internal/core/ports/driving"
	"github.com/custodia-labs/recordbook/internal/logger"
)

// version is overridden at build time.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "recordbook",
	Short: "Schema-flexible business records",
	Long: `recordbook keeps business records (policies, claims, clients, brokers)
in modules whose fields you define yourself.

Records can be imported from CSV, XLS and XLSX files, exported as CSV,
searched by keyword and checked for likely duplicates. State is saved
locally after every change.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

// Services aggregates the driving ports the commands call.
type Services struct {
	Modules    driving.ModuleService
	Schema     driving.SchemaService
	Records    driving.RecordService
	Transfer   driving.TransferService
	Duplicates driving.DuplicateService
	Search     driving.SearchService
	Settings   driving.SettingsService

	// Formats decides which files the import watcher picks up.
	Formats driven.TabularRegistry
}

var (
	moduleService    driving.ModuleService
	schemaService    driving.SchemaService
	recordService    driving.RecordService
	transferService  driving.TransferService
	duplicateService driving.DuplicateService
	searchService    driving.SearchService
	settingsService  driving.SettingsService
	tabularFormats   driven.TabularRegistry
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices injects the services used by every command.
func SetServices(s Services) {
	moduleService = s.Modules
	schemaService = s.Schema
	recordService = s.Records
	transferService = s.Transfer
	duplicateService = s.Duplicates
	searchService = s.Search
	settingsService = s.Settings
	tabularFormats = s.Formats
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
