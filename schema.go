package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alc6/h2schema/providers"
)

// extractSchemaWithDeps runs every migration in migrationDir against a fresh
// database and renders the resulting schema.
func extractSchemaWithDeps(ctx context.Context, migrationDir string, format providers.SchemaFormat,
	migrationReader MigrationReader, dbManager DatabaseManager, schemaExtractor SchemaExtractor) (string, error) {
	if _, err := os.Stat(migrationDir); os.IsNotExist(err) {
		return "", fmt.Errorf("migration directory does not exist: %s", migrationDir)
	}

	slog.Info("parsing migration files", "directory", migrationDir)
	migrations, err := migrationReader.DiscoverMigrations(migrationDir)
	if err != nil {
		return "", fmt.Errorf("failed to parse migrations: %w", err)
	}
	if len(migrations) == 0 {
		return "", fmt.Errorf("no migration files found in directory: %s", migrationDir)
	}
	slog.Info("found migrations", "count", len(migrations))

	slog.Info("setting up database")
	if err := dbManager.Setup(ctx); err != nil {
		return "", fmt.Errorf("failed to setup database: %w", err)
	}
	defer func() {
		if err := dbManager.Close(ctx); err != nil {
			slog.Error("failed to cleanup", "error", err)
		}
	}()

	slog.Info("running migrations")
	if err := dbManager.RunMigrations(ctx, migrations); err != nil {
		return "", fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("extracting schema", "format", format)
	result, err := schemaExtractor.ExtractSchema(ctx, dbManager.GetDB(), format)
	if err != nil {
		return "", fmt.Errorf("failed to extract schema: %w", err)
	}

	return schemaExtractor.Render(result), nil
}
