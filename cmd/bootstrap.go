package cmd

import (
	"fmt"

	"receiving-manager/core/config"
	"receiving-manager/core/database"
	"receiving-manager/core/reconcile"
	"receiving-manager/core/server"
	"receiving-manager/core/storage"
	"receiving-manager/feature/receiving/source"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// backends holds the connections opened for a command.
type backends struct {
	db      *gorm.DB
	storage storage.Client
	sources source.Set
}

// openBackends connects what the configured source needs and builds the receiving collaborators.
// The database is required for the database source; storage is required for the storage source
// and optional otherwise, in which case receipts are not archived.
func openBackends(cfg *config.Config, logg *zap.Logger) (*backends, error) {
	if !cfg.Server.IsValidSource() {
		return nil, fmt.Errorf("unknown source %q (expected %q or %q)", cfg.Server.Source, server.SourceDatabase, server.SourceStorage)
	}

	b := &backends{}

	if cfg.Server.Source == server.SourceDatabase {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		b.db = db
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver), zap.String("name", cfg.Database.Name))
	}

	client, err := storage.NewClient(cfg.Storage)
	switch {
	case err == nil:
		b.storage = client
	case cfg.Server.Source == server.SourceStorage:
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	default:
		logg.Warn("Storage unavailable, receipts will not be archived", zap.Error(err))
	}

	set, err := source.Select(cfg.Server.Source, b.db, b.storage, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}

	if ttl := cfg.Reconcile.ResolverCacheTTL(); ttl > 0 {
		set.Packs = reconcile.NewCachedResolver(set.Packs, ttl)
	}
	b.sources = set

	return b, nil
}
