package main

import (
	"fmt"

	"github.com/mitchelldurbincs/kingdomrun/internal/config"
	"github.com/mitchelldurbincs/kingdomrun/internal/store"
	"github.com/mitchelldurbincs/kingdomrun/internal/store/sqlite"
)

// openStore builds the snapshot store selected by storage.type.
func openStore(cfg config.StorageConfig) (store.Store, error) {
	switch cfg.Type {
	case config.StorageMemory, "":
		return store.NewMemoryStore(), nil
	case config.StorageFile:
		s, err := store.NewFileStore(cfg.File.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StorageSQLite:
		s, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
