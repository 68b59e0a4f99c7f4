// Package database holds the gorm connection and the relational repositories
package database

import (
	"os"
	"path/filepath"

	"github.com/kiervincent5/travel-planner/internal/adapters/storage"
	"github.com/kiervincent5/travel-planner/internal/config"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database. Driver errors such as unique
// violations are translated into gorm sentinels.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.NewDatabaseError("failed to connect to database", err)
	}

	// sqlite serialises writers; an in-memory database exists per connection
	if cfg.Driver == config.DatabaseDriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.NewDatabaseError("failed to access connection pool", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DatabaseDriverPostgres:
		return postgres.Open(cfg.GetDSN()), nil
	case config.DatabaseDriverSQLite:
		if cfg.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
				return nil, errors.NewConfigurationError("failed to create sqlite directory", err)
			}
		}
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, errors.NewConfigurationError("unsupported database driver: "+cfg.Driver.String(), nil)
	}
}

// RunMigrations creates the users and kv_entries tables
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&UserModel{}, &storage.KVEntry{}); err != nil {
		return errors.NewDatabaseError("failed to run migrations", err)
	}
	return nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
