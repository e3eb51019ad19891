// Package db owns the connection to PostgreSQL: it builds the pgx connection pool shared by
// every request for the lifetime of the process, and applies the embedded schema migrations
// with golang-migrate.
package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	// postgres database driver for golang-migrate; it talks to the server through lib/pq.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"github.com/user/taskmanager-go/apperror"
	"github.com/user/taskmanager-go/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewPool opens the application's connection pool and verifies it with a ping.
// The pool is opened once at process start and reused across all requests.
func NewPool(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, apperror.NewDatabaseError("error parsing DATABASE_URL", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	// Don't block forever if the database is unreachable.
	createCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(createCtx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError("error creating connection pool", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.NewDatabaseError("error connecting to the database", err)
	}

	return pool, nil
}

// RunMigrations applies every pending migration embedded in the binary.
// golang-migrate's postgres driver goes through database/sql, so it gets the
// connection string rather than the pgx pool.
func RunMigrations(databaseURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return apperror.NewDatabaseError("failed to open embedded migrations", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return apperror.NewDatabaseError("failed to create migrator", err)
	}
	defer func() {
		// Close errors only matter for diagnostics; the migration outcome is already decided.
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			fmt.Printf("Warning: error closing migrator: source=%v database=%v\n", srcErr, dbErr)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewDatabaseError("failed to run migrations", err)
	}
	return nil
}
