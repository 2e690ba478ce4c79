// Package db provides database connectivity and migration functionality for the recipefinder application.
// It handles establishing the connection pool and running the schema migrations that ship
// embedded in the binary.
// This package centralizes database concerns, similar to how a database module (e.g., TypeORMModule)
// would be configured in Nest.js, providing a pool to the rest of the application.
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	// `lib/pq` registers the "postgres" driver for database/sql; migrate's postgres driver runs on it.
	_ "github.com/lib/pq"

	"github.com/user/recipefinder-go/apperror"
	"github.com/user/recipefinder-go/config"
	"github.com/user/recipefinder-go/logging"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// NewPool establishes the pgxpool connection pool and pings the database.
func NewPool(ctx context.Context, cfg *config.PoolConfig) (*pgxpool.Pool, error) {
	// `pgxpool.ParseConfig` parses the DSN string into a `pgxpool.Config` struct.
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error parsing DSN for database %s", cfg.DBName), err)
	}

	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	// Use a context with a timeout so an unreachable database does not block startup forever.
	createCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(createCtx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error creating pgxpool for database %s", cfg.DBName), err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to the database %s with pgxpool", cfg.DBName), err)
	}

	return pool, nil
}

// newMigrator builds a migrate instance reading the embedded SQL files.
// The caller must close the returned *sql.DB after closing the migrator.
func newMigrator(cfg *config.PoolConfig) (*migrate.Migrate, *sql.DB, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, nil, apperror.NewMigrationError("failed to open embedded migrations", err)
	}

	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, nil, apperror.NewMigrationError("failed to open migration connection", err)
	}

	driver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		conn.Close()
		return nil, nil, apperror.NewMigrationError("failed to create migration driver", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.DBName, driver)
	if err != nil {
		conn.Close()
		return nil, nil, apperror.NewMigrationError("failed to create migrator", err)
	}
	return m, conn, nil
}

func closeMigrator(m *migrate.Migrate, conn *sql.DB, log logging.Logger) {
	ctx := context.Background()
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		log.Warn(ctx, "error closing migrator", "source_error", srcErr, "database_error", dbErr)
	}
	if err := conn.Close(); err != nil {
		log.Warn(ctx, "error closing migration connection", "error", err)
	}
}

// RunMigrations applies every pending up migration.
func RunMigrations(cfg *config.PoolConfig, log logging.Logger) error {
	m, conn, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer closeMigrator(m, conn, log)

	// `migrate.ErrNoChange` only means the schema is already current.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewMigrationError("failed to run migrations", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return apperror.NewMigrationError("failed to read migration version", err)
	}
	log.Info(context.Background(), "database schema is current", "version", version, "dirty", dirty)
	return nil
}

// RollbackMigrations reverts the last `steps` migrations.
func RollbackMigrations(cfg *config.PoolConfig, steps int, log logging.Logger) error {
	if steps < 1 {
		return apperror.NewBadRequestError("rollback steps must be at least 1", nil)
	}

	m, conn, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer closeMigrator(m, conn, log)

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewMigrationError("failed to roll back migrations", err)
	}
	log.Info(context.Background(), "migrations rolled back", "steps", steps)
	return nil
}
