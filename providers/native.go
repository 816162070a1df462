package providers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alc6/h2schema/adapter"
	"github.com/alc6/h2schema/dialect"
)

// NativeProvider reads the information schema and normalizes it through the dialect
type NativeProvider struct{}

// NewNativeProvider creates a new native provider
func NewNativeProvider() SchemaProvider {
	return &NativeProvider{}
}

// Name returns the provider name
func (p *NativeProvider) Name() string {
	return "native"
}

// IsAvailable always returns true for the native provider
func (p *NativeProvider) IsAvailable(dialect.Dialect) bool {
	return true
}

// ExtractSchema extracts the schema using information schema queries
func (p *NativeProvider) ExtractSchema(ctx context.Context, params ExtractParams) (*SchemaResult, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("native provider requires database connection")
	}
	if params.Dialect == nil {
		return nil, fmt.Errorf("native provider requires a dialect")
	}

	slog.Debug("extracting schema using native provider", "format", params.Format)

	a := adapter.New(params.DB, params.Dialect, adapter.Config{Schema: params.Schema}, nil)
	tables, err := ExtractSchemaFromDB(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("failed to extract schema: %w", err)
	}

	result := &SchemaResult{
		Tables: tables,
		Format: params.Format,
	}

	switch params.Format {
	case FormatSQL:
		result.RawSQL = FormatSchemaSQL(params.Dialect, tables)
	case FormatInfo, FormatTable:
		// formatted at the output layer
	default:
		return nil, fmt.Errorf("unsupported format: %s", params.Format)
	}

	return result, nil
}
