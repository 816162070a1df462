package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alc6/h2schema/adapter"
	"github.com/alc6/h2schema/dialect"
	"github.com/alc6/h2schema/providers"
)

var (
	extractMode bool
	mcpMode     bool
	cfgFile     string

	appConfig = &Config{
		Driver:   defaultDriver,
		Image:    defaultImage,
		Format:   defaultFormat,
		Provider: defaultProvider,
	}

	typeLimit     int64
	typePrecision int64
	typeScale     int64
	columnDefault string
)

var rootCmd = &cobra.Command{
	Use:   "h2schema [migration-directory]",
	Short: "Extract an H2 database schema from migration files",
	Long: `h2schema takes a directory containing migration files (.up.sql and .down.sql),
runs them against an H2 database and prints the resulting schema as the H2
dialect understands it.

An H2 server with its PostgreSQL listener is started with testcontainers unless
--dsn points at a running one.

Modes:
  info mode (default): Shows human-readable schema information
  extract mode (-e): Outputs H2 CREATE statements
  mcp mode (--mcp): Run as Model Context Protocol server`,
	Args: func(cmd *cobra.Command, args []string) error {
		if mcpMode {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	PersistentPreRunE: loadAppConfig,
	RunE:              runH2Schema,
	SilenceUsage:      true,
}

var typeCmd = &cobra.Command{
	Use:   "type <symbol>",
	Short: "Print the H2 column type for an abstract type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sqlType, err := typeToSQL(args[0],
			changedInt(cmd, "limit", typeLimit),
			changedInt(cmd, "precision", typePrecision),
			changedInt(cmd, "scale", typeScale))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sqlType)
		return nil
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <sql-type>",
	Short: "Show how the H2 dialect normalizes a reported column type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def := sql.NullString{String: columnDefault, Valid: cmd.Flags().Changed("default")}
		fmt.Fprint(cmd.OutOrStdout(), normalizeType(args[0], def))
		return nil
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain <query>",
	Short: "Print the H2 query plan for a query against a running server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig.DSN == "" {
			return fmt.Errorf("explain requires --dsn")
		}
		plan, err := explainQuery(cmd.Context(), NewServerManager(appConfig.Driver, appConfig.DSN), appConfig.Schema, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), plan)
		return nil
	},
}

func main() {
	if err := run(); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	registerFlags()
	return rootCmd.Execute()
}

func registerFlags() {
	flags := rootCmd.Flags()
	if flags.Lookup("extract") == nil {
		flags.BoolVarP(&extractMode, "extract", "e", false, "Extract schema as SQL CREATE statements")
	}
	if flags.Lookup("mcp") == nil {
		flags.BoolVar(&mcpMode, "mcp", false, "Run as Model Context Protocol server")
	}

	persistent := rootCmd.PersistentFlags()
	if persistent.Lookup("config") == nil {
		persistent.StringVar(&cfgFile, "config", "", "Config file (default ./"+configFileName+" if present)")
		persistent.String("driver", defaultDriver, "database/sql driver: postgres or pgx")
		persistent.String("dsn", "", "Connect to a running H2 PG server instead of starting a container")
		persistent.String("schema", "", "Schema to introspect (default: every user schema)")
		persistent.String("image", defaultImage, "H2 Docker image to use")
		persistent.String("format", defaultFormat, "Output format: info, table or sql")
		persistent.String("provider", defaultProvider, "Schema provider: native or script")
		persistent.String("log-level", "info", "Log level: debug, info, warn or error")
	}

	if typeCmd.Flags().Lookup("limit") == nil {
		typeCmd.Flags().Int64Var(&typeLimit, "limit", 0, "Byte size or length")
		typeCmd.Flags().Int64Var(&typePrecision, "precision", 0, "Decimal precision")
		typeCmd.Flags().Int64Var(&typeScale, "scale", 0, "Decimal scale")
	}
	if normalizeCmd.Flags().Lookup("default") == nil {
		normalizeCmd.Flags().StringVar(&columnDefault, "default", "", "Column default as reported by the database")
	}

	if !rootCmd.HasSubCommands() {
		rootCmd.AddCommand(typeCmd, normalizeCmd, explainCmd)
	}
}

func loadAppConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	appConfig = cfg

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	})))
	return nil
}

func changedInt(cmd *cobra.Command, name string, value int64) sql.NullInt64 {
	if !cmd.Flags().Changed(name) {
		return sql.NullInt64{}
	}
	return dialect.Int(value)
}

func runH2Schema(cmd *cobra.Command, args []string) error {
	if mcpMode {
		slog.Info("starting mcp server")
		if err := StartMCPServer(appConfig); err != nil {
			return fmt.Errorf("failed to start mcp server: %w", err)
		}
		return nil
	}

	format := providers.ParseFormat(appConfig.Format)
	if extractMode {
		format = providers.FormatSQL
	}

	schemaExtractor, err := newSchemaExtractor(appConfig.Provider, appConfig.Schema)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return processSchema(ctx, cmd.OutOrStdout(), args[0], format,
		NewFileMigrationReader(), newDatabaseManager(appConfig), schemaExtractor)
}

func processSchema(ctx context.Context, w io.Writer, migrationDir string, format providers.SchemaFormat,
	migrationReader MigrationReader, dbManager DatabaseManager, schemaExtractor SchemaExtractor) error {
	slog.Info("processing migration directory", "directory", migrationDir)

	output, err := extractSchemaWithDeps(ctx, migrationDir, format, migrationReader, dbManager, schemaExtractor)
	if err != nil {
		return err
	}

	fmt.Fprint(w, output)
	return nil
}

// explainQuery asks a running server for the plan of query
func explainQuery(ctx context.Context, dbManager DatabaseManager, schema, query string) (string, error) {
	if err := dbManager.Setup(ctx); err != nil {
		return "", fmt.Errorf("failed to setup database: %w", err)
	}
	defer func() {
		if err := dbManager.Close(ctx); err != nil {
			slog.Error("failed to cleanup", "error", err)
		}
	}()

	a := adapter.New(dbManager.GetDB(), dialect.NewH2(), adapter.Config{Schema: schema}, slog.Default())
	return a.Explain(ctx, query)
}
