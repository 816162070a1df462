package main

import (
	"context"
	"database/sql"

	"github.com/alc6/h2schema/providers"
)

// DatabaseManager handles database lifecycle and operations
type DatabaseManager interface {
	// Setup creates and initializes the database connection
	Setup(ctx context.Context) error
	// Close cleans up database resources
	Close(ctx context.Context) error
	// RunMigrations executes the provided migrations
	RunMigrations(ctx context.Context, migrations []Migration) error
	// GetDB returns the underlying database connection
	GetDB() *sql.DB
	// GetConnectionString returns the DSN the connection was opened with
	GetConnectionString() string
}

// SchemaExtractor handles extracting schema information from a database
type SchemaExtractor interface {
	// ExtractSchema retrieves schema information in the given format
	ExtractSchema(ctx context.Context, db *sql.DB, format providers.SchemaFormat) (*providers.SchemaResult, error)
	// Render turns an extraction result into printable output
	Render(result *providers.SchemaResult) string
}

// MigrationReader handles reading migration files
type MigrationReader interface {
	// DiscoverMigrations finds all migration files in the given directory
	DiscoverMigrations(dir string) ([]Migration, error)
}
