package storage

import (
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/spendy/internal/config"
	"github.com/MrJamesThe3rd/spendy/internal/database"
	"github.com/MrJamesThe3rd/spendy/internal/persistence"
	"github.com/MrJamesThe3rd/spendy/internal/storage/memory"
	"github.com/MrJamesThe3rd/spendy/internal/storage/sqlstore"
)

// Open migrates and connects the backend named in cfg. The returned close
// func releases the connection and is safe to call for every backend.
func Open(cfg *config.Config, logger *slog.Logger) (persistence.KV, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		logger.Warn("using in-memory storage, nothing survives a restart")
		return memory.New(), func() error { return nil }, nil

	case config.BackendSQLite:
		path := cfg.Storage.SQLitePath

		db, err := database.NewSQLite(path)
		if err != nil {
			return nil, nil, err
		}

		if err := database.Migrate(database.DriverSQLite, database.SQLiteDSN(path)); err != nil {
			db.Close()
			return nil, nil, err
		}

		logger.Info("opened sqlite storage", "path", path)

		return sqlstore.New(db, sqlstore.DialectSQLite), db.Close, nil

	case config.BackendPostgres:
		dsn := cfg.ConnectionString()

		db, err := database.NewPostgres(dsn)
		if err != nil {
			return nil, nil, err
		}

		if err := database.Migrate(database.DriverPostgres, dsn); err != nil {
			db.Close()
			return nil, nil, err
		}

		logger.Info("opened postgres storage", "host", cfg.DB.Host, "database", cfg.DB.Name)

		return sqlstore.New(db, sqlstore.DialectPostgres), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
