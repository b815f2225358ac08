package main

import (
	"github.com/custodia-labs/recordbook/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/recordbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recordbook/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driven"
	"github.com/custodia-labs/recordbook/internal/logger"
)

// openStore opens the configured durable slot. When it cannot be opened the
// session continues on an in-memory store and changes are lost at exit.
func openStore(cfg domain.StorageSettings) (driven.KeyValueStore, func()) {
	noop := func() {}

	switch cfg.Backend {
	case domain.StorageFile:
		store, err := file.NewStore(cfg.Dir)
		if err != nil {
			logger.Warnw("file storage unavailable, changes will not be saved", "dir", cfg.Dir, "err", err)
			return memory.NewKeyValueStore(), noop
		}
		logger.Debug("using file storage in %s", store.Dir())
		return store, noop

	default:
		store, err := sqlite.NewStore(cfg.Dir)
		if err != nil {
			logger.Warnw("sqlite storage unavailable, changes will not be saved", "dir", cfg.Dir, "err", err)
			return memory.NewKeyValueStore(), noop
		}
		logger.Debug("using sqlite storage at %s", store.Path())
		return store.KeyValueStore(), func() {
			if err := store.Close(); err != nil {
				logger.Warnw("closing sqlite storage", "err", err)
			}
		}
	}
}
