package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/recordbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/services"
	"github.com/custodia-labs/recordbook/internal/tabular"
)

// setupTestServices wires in-memory services over the built-in catalog.
// Generated record ids are rec-1, rec-2, ...
func setupTestServices() func() {
	catalog := domain.DefaultCatalog()
	n := 0
	ws := services.NewWorkspace(catalog, domain.DefaultSnapshot(catalog),
		services.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("rec-%d", n)
		}),
	)
	settings := services.NewSettingsService(memory.NewConfigStore())
	formats := tabular.Default()

	SetServices(Services{
		Modules:    services.NewModuleService(ws),
		Schema:     services.NewSchemaService(ws),
		Records:    services.NewRecordService(ws),
		Transfer:   services.NewTransferService(ws, formats),
		Duplicates: services.NewDuplicateService(ws),
		Search:     services.NewSearchService(ws, settings),
		Settings:   settings,
		Formats:    formats,
	})

	origTerminal := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }

	return func() {
		SetServices(Services{})
		stdinIsTerminal = origTerminal
		rootCmd.SetIn(nil)
	}
}

// executeCommand runs the root command with args and returns combined output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// executeWithInput runs the root command reading stdin from input.
func executeWithInput(input string, args ...string) (string, error) {
	rootCmd.SetIn(strings.NewReader(input))
	defer rootCmd.SetIn(nil)
	return executeCommand(args...)
}

// resetFlags restores every flag to its default so tests do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
