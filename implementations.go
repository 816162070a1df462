package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/alc6/h2schema/dialect"
	"github.com/alc6/h2schema/providers"
)

const (
	h2PGPort   = "5435/tcp"
	h2Database = "h2schema"
	h2User     = "sa"
	h2Password = "sa"
)

// H2ContainerManager runs a throwaway H2 server with its PostgreSQL listener enabled
type H2ContainerManager struct {
	image     string
	driver    string
	container testcontainers.Container
	db        *sql.DB
	connStr   string
}

func NewH2ContainerManager(image, driver string) DatabaseManager {
	if image == "" {
		image = defaultImage
	}
	if driver == "" {
		driver = defaultDriver
	}
	return &H2ContainerManager{image: image, driver: driver}
}

func (h *H2ContainerManager) Setup(ctx context.Context) error {
	slog.Debug("starting h2 container", "image", h.image)
	req := testcontainers.ContainerRequest{
		Image:        h.image,
		ExposedPorts: []string{h2PGPort},
		Env: map[string]string{
			"H2_OPTIONS": "-ifNotExists -pg -pgAllowOthers",
		},
		WaitingFor: wait.ForListeningPort(h2PGPort).WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return fmt.Errorf("failed to start container: %w", err)
	}
	h.container = container

	host, err := container.Host(ctx)
	if err != nil {
		return fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, h2PGPort)
	if err != nil {
		return fmt.Errorf("failed to get mapped port: %w", err)
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", h2User, h2Password, host, port.Port(), h2Database)
	slog.Debug("got database connection string", "host", host, "port", port.Port())

	db, err := openDB(ctx, h.driver, connStr)
	if err != nil {
		return err
	}

	h.db = db
	h.connStr = connStr

	slog.Info("h2 container ready")
	return nil
}

func (h *H2ContainerManager) Close(ctx context.Context) error {
	if h.db != nil {
		h.db.Close()
	}
	if h.container != nil {
		return h.container.Terminate(ctx)
	}
	return nil
}

func (h *H2ContainerManager) RunMigrations(ctx context.Context, migrations []Migration) error {
	return runMigrations(ctx, h.db, migrations)
}

func (h *H2ContainerManager) GetDB() *sql.DB {
	return h.db
}

func (h *H2ContainerManager) GetConnectionString() string {
	return h.connStr
}

// H2SchemaExtractor extracts through a schema provider and renders with the H2 dialect
type H2SchemaExtractor struct {
	provider providers.SchemaProvider
	dialect  dialect.Dialect
	schema   string
}

func NewH2SchemaExtractor(provider providers.SchemaProvider, schema string) SchemaExtractor {
	return &H2SchemaExtractor{
		provider: provider,
		dialect:  dialect.NewH2(),
		schema:   schema,
	}
}

// newProviderRegistry returns every provider the CLI and MCP server know about
func newProviderRegistry() *providers.ProviderRegistry {
	registry := providers.NewProviderRegistry()
	registry.Register(providers.NewNativeProvider())
	registry.Register(providers.NewScriptProvider())
	return registry
}

// newSchemaExtractor resolves providerName against the registry for the H2 dialect
func newSchemaExtractor(providerName, schema string) (SchemaExtractor, error) {
	provider, exists := newProviderRegistry().Get(providerName)
	if !exists {
		return nil, fmt.Errorf("unknown provider: %s", providerName)
	}
	if !provider.IsAvailable(dialect.NewH2()) {
		return nil, fmt.Errorf("provider '%s' is not available for %s", providerName, dialect.AdapterName)
	}
	return NewH2SchemaExtractor(provider, schema), nil
}

func (e *H2SchemaExtractor) ExtractSchema(ctx context.Context, db *sql.DB, format providers.SchemaFormat) (*providers.SchemaResult, error) {
	return e.provider.ExtractSchema(ctx, providers.ExtractParams{
		DB:      db,
		Dialect: e.dialect,
		Schema:  e.schema,
		Format:  format,
	})
}

func (e *H2SchemaExtractor) Render(result *providers.SchemaResult) string {
	switch result.Format {
	case providers.FormatSQL:
		return result.RawSQL
	case providers.FormatTable:
		return providers.FormatSchemaTable(result.Tables)
	default:
		return "\n=== DATABASE SCHEMA ===\n" + providers.FormatSchemaInfo(result.Tables)
	}
}

type FileMigrationReader struct{}

func NewFileMigrationReader() MigrationReader {
	return &FileMigrationReader{}
}

func (r *FileMigrationReader) DiscoverMigrations(dir string) ([]Migration, error) {
	return ParseMigrations(dir)
}
