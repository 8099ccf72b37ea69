package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Models lists every table the catalog migrates.
var Models = []any{
	&entities.Author{},
	&entities.Genre{},
	&entities.Book{},
	&entities.BookInstance{},
	&entities.AuditEvent{},
}

type Database struct {
	DB     *gorm.DB
	driver config.DatabaseDriver
}

// Open connects using the configured driver and migrates the schema.
func Open(cfg config.Database) (*Database, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("DATABASE_DSN is required for the postgres driver")
		}
		return open(postgres.Open(cfg.DSN), cfg.Driver, "postgres")
	case config.DriverSQLite, "":
		return NewDatabase(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewDatabase opens (or creates) a SQLite database file in WAL mode.
func NewDatabase(dbPath string) (*Database, error) {
	dsn := dbPath
	if !strings.Contains(dsn, "?") && dsn != ":memory:" {
		dsn += "?_journal=WAL&_busy_timeout=5000"
	}
	return open(sqlite.Open(dsn), config.DriverSQLite, dbPath)
}

func open(dialector gorm.Dialector, driver config.DatabaseDriver, location string) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Referential integrity is enforced by the catalog's delete guard, not the store.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		// SQLite takes one writer at a time; ":memory:" is per connection.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info().Str("driver", string(driver)).Str("location", location).Msg("Database initialized")

	return &Database{DB: db, driver: driver}, nil
}

// Driver reports which backend the database was opened with.
func (d *Database) Driver() config.DatabaseDriver {
	return d.driver
}

// Ping checks connectivity of the underlying connection pool.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
