package providers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alc6/h2schema/adapter"
)

// ExtractSchemaFromDB reads every table of the adapter's schema with its
// normalized columns and indexes
func ExtractSchemaFromDB(ctx context.Context, a *adapter.Adapter) ([]Table, error) {
	slog.Debug("starting schema extraction", "adapter", a.Name(), "schema", a.Schema())
	tables, err := a.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tables: %w", err)
	}
	slog.Info("found database tables", "count", len(tables), "tables", tables)

	var schema []Table
	for _, tableName := range tables {
		slog.Debug("processing table", "table", tableName)

		columns, err := a.Columns(ctx, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		slog.Debug("found table columns", "table", tableName, "count", len(columns))

		indexes, err := a.Indexes(ctx, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to get indexes for table %s: %w", tableName, err)
		}
		slog.Debug("found table indexes", "table", tableName, "count", len(indexes))

		schema = append(schema, Table{
			Name:    tableName,
			Columns: columns,
			Indexes: indexes,
		})
	}

	slog.Info("schema extraction completed", "tables", len(schema))
	return schema, nil
}
