// Package database manages the PostgreSQL connection pool and schema migrations.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/lifecycle"
)

// System manages the database connection pool lifecycle and migrations.
type System interface {
	Start(lc *lifecycle.Coordinator) error
	Migrate(source fs.FS) error
	DB() *sql.DB
}

type system struct {
	db     *sql.DB
	cfg    *Config
	logger *slog.Logger
}

// New opens a pooled database connection using the pgx stdlib driver.
// The connection is verified with a ping bounded by the configured timeout.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeoutDuration())
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &system{
		db:     db,
		cfg:    cfg,
		logger: logger.With("system", "database"),
	}, nil
}

// DB returns the underlying connection pool.
func (s *system) DB() *sql.DB {
	return s.db
}

// Start registers the connection pool for closure on shutdown.
func (s *system) Start(lc *lifecycle.Coordinator) error {
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := s.db.Close(); err != nil {
			s.logger.Error("database close error", "error", err)
		} else {
			s.logger.Info("database closed")
		}
	})

	s.logger.Info("database connected", "host", s.cfg.Host, "name", s.cfg.Name)
	return nil
}

// Migrate applies all pending migrations from the given source filesystem.
// The source must contain golang-migrate SQL files at its root.
func (s *system) Migrate(source fs.FS) error {
	src, err := iofs.New(source, ".")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	driver, err := postgres.WithInstance(s.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, s.cfg.Name, driver)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration version: %w", err)
	}

	s.logger.Info("migrations applied", "version", version, "dirty", dirty)
	return nil
}
