package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

// Drivers that speak the PostgreSQL wire protocol H2 serves with -pg.
var supportedDrivers = []string{"pgx", "postgres"}

func openDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if !slices.Contains(supportedDrivers, driver) {
		return nil, fmt.Errorf("unsupported driver %q, expected one of %s", driver, strings.Join(supportedDrivers, ", "))
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// ServerManager connects to an already running H2 server
type ServerManager struct {
	driver string
	dsn    string
	db     *sql.DB
}

func NewServerManager(driver, dsn string) DatabaseManager {
	return &ServerManager{driver: driver, dsn: dsn}
}

func (s *ServerManager) Setup(ctx context.Context) error {
	slog.Debug("connecting to h2 server", "driver", s.driver)
	db, err := openDB(ctx, s.driver, s.dsn)
	if err != nil {
		return err
	}
	s.db = db

	slog.Info("h2 server connection ready")
	return nil
}

func (s *ServerManager) Close(context.Context) error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *ServerManager) RunMigrations(ctx context.Context, migrations []Migration) error {
	return runMigrations(ctx, s.db, migrations)
}

func (s *ServerManager) GetDB() *sql.DB {
	return s.db
}

func (s *ServerManager) GetConnectionString() string {
	return s.dsn
}

// newDatabaseManager picks a container unless a DSN is configured
func newDatabaseManager(cfg *Config) DatabaseManager {
	if cfg.DSN != "" {
		return NewServerManager(cfg.Driver, cfg.DSN)
	}
	return NewH2ContainerManager(cfg.Image, cfg.Driver)
}
