package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alc6/h2schema/dialect"
)

// ScriptProvider uses H2's SCRIPT command to dump the schema as DDL
type ScriptProvider struct{}

// NewScriptProvider creates a new script provider
func NewScriptProvider() SchemaProvider {
	return &ScriptProvider{}
}

// Name returns the provider name
func (p *ScriptProvider) Name() string {
	return "script"
}

// IsAvailable reports whether d is the H2 dialect, the only one with SCRIPT
func (p *ScriptProvider) IsAvailable(d dialect.Dialect) bool {
	return d != nil && d.Name() == dialect.AdapterName
}

// ExtractSchema extracts the schema using SCRIPT NODATA
func (p *ScriptProvider) ExtractSchema(ctx context.Context, params ExtractParams) (*SchemaResult, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("script provider requires database connection")
	}

	// Only SQL format is supported by SCRIPT
	if params.Format != FormatSQL {
		return nil, fmt.Errorf("script provider only supports SQL format")
	}

	query := "SCRIPT NODATA NOPASSWORDS NOSETTINGS"
	if params.Schema != "" {
		query += " SCHEMA " + params.Schema
	}
	slog.Debug("extracting schema using script provider", "query", query)

	rows, err := params.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("script failed: %w", err)
	}
	defer rows.Close()

	var statements []string
	for rows.Next() {
		var stmt string
		if err := rows.Scan(&stmt); err != nil {
			return nil, fmt.Errorf("failed to scan script output: %w", err)
		}
		statements = append(statements, stmt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("script failed: %w", err)
	}

	return &SchemaResult{
		RawSQL: p.cleanupScriptOutput(statements),
		Format: FormatSQL,
	}, nil
}

// cleanupScriptOutput drops statements that are not part of the table schema
func (p *ScriptProvider) cleanupScriptOutput(statements []string) string {
	var cleaned []string

	for _, stmt := range statements {
		trimmed := strings.TrimSpace(stmt)
		upper := strings.ToUpper(trimmed)

		// Skip empty statements and row count comments
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}

		// Skip users, rights and settings
		if strings.HasPrefix(upper, "CREATE USER") ||
			strings.HasPrefix(upper, "GRANT ") ||
			strings.HasPrefix(upper, "SET ") {
			continue
		}

		// Identity columns recreate their sequences
		if strings.HasPrefix(upper, "CREATE SEQUENCE") {
			continue
		}

		cleaned = append(cleaned, p.normalizeStatement(trimmed))
	}

	if len(cleaned) == 0 {
		return ""
	}
	return strings.Join(cleaned, "\n") + "\n"
}

// normalizeStatement strips storage modifiers and the default schema prefix
func (p *ScriptProvider) normalizeStatement(stmt string) string {
	stmt = strings.Replace(stmt, "CREATE MEMORY TABLE ", "CREATE TABLE ", 1)
	stmt = strings.Replace(stmt, "CREATE CACHED TABLE ", "CREATE TABLE ", 1)
	stmt = strings.ReplaceAll(stmt, `"PUBLIC".`, "")
	stmt = strings.ReplaceAll(stmt, "PUBLIC.", "")

	if !strings.HasSuffix(stmt, ";") {
		stmt += ";"
	}
	return stmt
}
