package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/alc6/h2schema/dialect"
	"github.com/alc6/h2schema/providers"
)

// StartMCPServer starts the MCP server for schema extraction and type mapping
func StartMCPServer(cfg *Config) error {
	s := newMCPServer(cfg)

	slog.Info("starting h2schema mcp server")
	return server.ServeStdio(s)
}

func newMCPServer(cfg *Config) *server.MCPServer {
	s := server.NewMCPServer(
		"h2schema",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	extractSchemaTool := mcp.NewTool("extract_schema",
		mcp.WithDescription("Run migration files against an H2 database and extract the resulting schema"),
		mcp.WithString("migration_directory",
			mcp.Required(),
			mcp.Description("Path to directory containing migration files"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'sql' for CREATE statements (default), 'info' or 'table'"),
			mcp.Enum("sql", "info", "table"),
		),
		mcp.WithString("provider",
			mcp.Description("Schema provider: 'native' (default) or 'script'"),
			mcp.Enum("native", "script"),
		),
		mcp.WithString("h2_image",
			mcp.Description("H2 Docker image to use (default: "+defaultImage+")"),
		),
	)

	s.AddTool(extractSchemaTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleExtractSchema(ctx, cfg, request)
	})

	validateMigrationsTool := mcp.NewTool("validate_migrations",
		mcp.WithDescription("Validate migration files in directory without running them"),
		mcp.WithString("migration_directory",
			mcp.Required(),
			mcp.Description("Path to directory containing migration files"),
		),
	)

	s.AddTool(validateMigrationsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleValidateMigrations(ctx, request)
	})

	typeToSQLTool := mcp.NewTool("type_to_sql",
		mcp.WithDescription("Map an abstract column type to its H2 column type"),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Abstract type, e.g. integer, float, binary, decimal, string"),
		),
		mcp.WithNumber("limit", mcp.Description("Byte size or length")),
		mcp.WithNumber("precision", mcp.Description("Decimal precision")),
		mcp.WithNumber("scale", mcp.Description("Decimal scale")),
	)

	s.AddTool(typeToSQLTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleTypeToSQL(ctx, request)
	})

	normalizeColumnTool := mcp.NewTool("normalize_column",
		mcp.WithDescription("Normalize a column type and default as reported by H2 metadata"),
		mcp.WithString("sql_type",
			mcp.Required(),
			mcp.Description("Reported column type, e.g. INTEGER(10) or DECIMAL(65535,32767)"),
		),
		mcp.WithString("default", mcp.Description("Reported column default")),
	)

	s.AddTool(normalizeColumnTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleNormalizeColumn(ctx, request)
	})

	return s
}

// handleExtractSchema processes the extract_schema tool request
func handleExtractSchema(ctx context.Context, cfg *Config, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	migrationDir, err := request.RequireString("migration_directory")
	if err != nil {
		return mcp.NewToolResultError("migration_directory parameter is required"), nil
	}

	format := request.GetString("format", "sql")
	providerName := request.GetString("provider", defaultProvider)
	image := request.GetString("h2_image", cfg.Image)

	output, err := extractSchemaCore(ctx, cfg, migrationDir, format, providerName, image)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("schema extracted successfully:\n\n%s", output)), nil
}

// extractSchemaCore resolves the provider and database, separated for testing
func extractSchemaCore(ctx context.Context, cfg *Config, migrationDir, format, providerName, image string) (string, error) {
	schemaExtractor, err := newSchemaExtractor(providerName, cfg.Schema)
	if err != nil {
		return "", err
	}

	dbCfg := *cfg
	dbCfg.Image = image
	return extractSchemaWithDeps(ctx, migrationDir, providers.ParseFormat(format),
		NewFileMigrationReader(), newDatabaseManager(&dbCfg), schemaExtractor)
}

// handleValidateMigrations processes the validate_migrations tool request
func handleValidateMigrations(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	migrationDir, err := request.RequireString("migration_directory")
	if err != nil {
		return mcp.NewToolResultError("migration_directory parameter is required"), nil
	}

	output, err := validateMigrationsCore(migrationDir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("migration validation completed:\n\n%s", output)), nil
}

type migrationInfo struct {
	Name        string `json:"name"`
	UpFile      string `json:"up_file"`
	DownFile    string `json:"down_file,omitempty"`
	HasDownFile bool   `json:"has_down_file"`
	Statements  int    `json:"statements"`
}

type validationResult struct {
	Valid          bool            `json:"valid"`
	MigrationCount int             `json:"migration_count"`
	Migrations     []migrationInfo `json:"migrations"`
}

// validateMigrationsCore contains the core logic for migration validation, separated for testing
func validateMigrationsCore(migrationDir string) (string, error) {
	if _, err := os.Stat(migrationDir); os.IsNotExist(err) {
		return "", fmt.Errorf("migration directory does not exist: %s", migrationDir)
	}

	migrations, err := ParseMigrations(migrationDir)
	if err != nil {
		return "", fmt.Errorf("failed to parse migrations: %w", err)
	}

	result := validationResult{
		Valid:          true,
		MigrationCount: len(migrations),
		Migrations:     make([]migrationInfo, 0, len(migrations)),
	}

	for _, migration := range migrations {
		content, err := os.ReadFile(migration.UpFile)
		if err != nil {
			return "", fmt.Errorf("failed to read migration file %s: %w", migration.UpFile, err)
		}

		info := migrationInfo{
			Name:        migration.Name,
			UpFile:      migration.UpFile,
			DownFile:    migration.DownFile,
			HasDownFile: migration.DownFile != "",
			Statements:  len(splitStatements(string(content))),
		}
		if info.Statements == 0 {
			result.Valid = false
		}
		result.Migrations = append(result.Migrations, info)
	}

	jsonOutput, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result to JSON: %w", err)
	}

	return string(jsonOutput), nil
}

// handleTypeToSQL processes the type_to_sql tool request
func handleTypeToSQL(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, err := request.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type parameter is required"), nil
	}

	sqlType, err := typeToSQL(symbol,
		numberArgument(request, "limit"),
		numberArgument(request, "precision"),
		numberArgument(request, "scale"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(sqlType), nil
}

// handleNormalizeColumn processes the normalize_column tool request
func handleNormalizeColumn(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sqlType, err := request.RequireString("sql_type")
	if err != nil {
		return mcp.NewToolResultError("sql_type parameter is required"), nil
	}

	var def sql.NullString
	if _, ok := request.GetArguments()["default"]; ok {
		def = sql.NullString{String: request.GetString("default", ""), Valid: true}
	}

	jsonOutput, err := json.MarshalIndent(normalizeType(sqlType, def), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result to JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonOutput)), nil
}

// numberArgument reads an optional numeric argument; absent means unset
func numberArgument(request mcp.CallToolRequest, name string) sql.NullInt64 {
	if _, ok := request.GetArguments()[name]; !ok {
		return sql.NullInt64{}
	}
	return dialect.Int(int64(request.GetFloat(name, 0)))
}
