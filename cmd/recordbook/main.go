// Command recordbook manages schema-flexible business records.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	configfile "github.com/custodia-labs/recordbook/internal/adapters/driven/config/file"
	"github.com/custodia-labs/recordbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recordbook/internal/adapters/driving/cli"
	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driven"
	"github.com/custodia-labs/recordbook/internal/core/services"
	"github.com/custodia-labs/recordbook/internal/logger"
	"github.com/custodia-labs/recordbook/internal/tabular"
)

// version is set via ldflags at release time.
var version = "dev"

// closeTimeout bounds how long exit waits for the last snapshot write.
const closeTimeout = 5 * time.Second

func main() {
	if err := run(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var configStore driven.ConfigStore
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		logger.Warnw("config unreadable, using defaults", "err", err)
		configStore = memory.NewConfigStore()
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading settings: %v\n", err)
		return err
	}
	logger.SetFormat(logger.Format(settings.Log.Format))
	logger.SetVerbose(settings.Log.Verbose)
	defer logger.Sync()

	store, closeStore := openStore(settings.Storage)
	defer closeStore()

	catalog := domain.DefaultCatalog()
	snapshot := services.LoadSnapshot(ctx, store, services.SnapshotKey, catalog)

	persister := services.NewPersister(store)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := persister.Close(closeCtx); err != nil {
			logger.Warnw("pending snapshot not written before exit", "err", err)
		}
	}()

	ws := services.NewWorkspace(catalog, snapshot, services.WithSnapshotSink(persister))
	formats := tabular.Default()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Modules:    services.NewModuleService(ws),
		Schema:     services.NewSchemaService(ws),
		Records:    services.NewRecordService(ws),
		Transfer:   services.NewTransferService(ws, formats),
		Duplicates: services.NewDuplicateService(ws),
		Search:     services.NewSearchService(ws, settingsService),
		Settings:   settingsService,
		Formats:    formats,
	})

	return cli.Execute(ctx)
}
