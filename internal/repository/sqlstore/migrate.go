package sqlstore

import (
	"embed"
	"errors"
	"fmt"

	"github.com/Rrens/boardsync/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies all pending migrations. Down rolls back every migration
// when down is true.
func (db *DB) Migrate(down bool) error {
	m, closeFn, err := db.newMigrate()
	if err != nil {
		return err
	}
	defer closeFn()

	if down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Str("driver", db.driver).Msg("Database migration: no changes")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info().
		Str("driver", db.driver).
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("Database migration: success")
	return nil
}

func (db *DB) newMigrate() (*migrate.Migrate, func(), error) {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	switch db.driver {
	case config.DriverSQLite:
		// The sqlite driver closes the handle it wraps, so it is never closed here.
		driver, err := sqlite.WithInstance(db.sql, &sqlite.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create migrate driver: %w", err)
		}
		m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
		return m, func() {}, nil

	case config.DriverPostgres, config.DriverMySQL:
		url := db.cfg.DSN()
		if db.driver == config.DriverMySQL {
			url = "mysql://" + db.cfg.MySQLDSN()
		}
		m, err := migrate.NewWithSourceInstance("iofs", src, url)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
		return m, func() {
			if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
				log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrate instance")
			}
		}, nil
	}

	return nil, nil, fmt.Errorf("unsupported database driver %q", db.driver)
}
