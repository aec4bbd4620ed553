package cmd

import (
	"context"
	"fmt"
	"time"

	"project-sync/core/config"
	"project-sync/core/database"
	"project-sync/core/remote"
	"project-sync/core/remote/objectstore"
	"project-sync/core/remote/sqlstore"
	"project-sync/core/storage"

	"go.uber.org/zap"
)

// openRemoteStore connects the backend selected by cfg.Remote.Backend and
// prepares it (table migration or bucket creation).
func openRemoteStore(ctx context.Context, cfg *config.Config, l *zap.Logger) (remote.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Remote.TimeoutSeconds)*time.Second)
	defer cancel()

	switch cfg.Remote.Backend {
	case remote.BackendSQL, "":
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		store := sqlstore.New(db)
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		l.Info("Connected to remote document database",
			zap.String("driver", db.Dialector.Name()),
			zap.String("table", sqlstore.TableName))
		return store, nil

	case remote.BackendObject:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		store := objectstore.New(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
		if err := store.EnsureBucket(ctx, cfg.Storage.Region); err != nil {
			return nil, err
		}
		l.Info("Connected to remote object storage",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("prefix", cfg.Storage.Prefix))
		return store, nil

	default:
		return nil, fmt.Errorf("unknown remote backend %q", cfg.Remote.Backend)
	}
}
