package providers

import (
	"context"
	"sort"

	"github.com/alc6/h2schema/adapter"
	"github.com/alc6/h2schema/dialect"
)

// SchemaProvider defines the interface for different schema extraction providers
type SchemaProvider interface {
	// Name returns the provider name for identification
	Name() string

	// ExtractSchema extracts the schema using the provider's method
	// The context allows for cancellation and timeout control
	ExtractSchema(ctx context.Context, params ExtractParams) (*SchemaResult, error)

	// IsAvailable checks if this provider can be used with the given dialect
	IsAvailable(d dialect.Dialect) bool
}

// ExtractParams contains parameters needed for schema extraction
type ExtractParams struct {
	// DB is the database connection
	DB adapter.Executor

	// Dialect interprets column metadata and emits DDL
	Dialect dialect.Dialect

	// Schema scopes extraction; empty means every user schema
	Schema string

	// Format specifies the output format
	Format SchemaFormat
}

// SchemaFormat represents the desired output format
type SchemaFormat string

const (
	FormatInfo  SchemaFormat = "info"  // Human-readable format
	FormatTable SchemaFormat = "table" // Boxed table per database table
	FormatSQL   SchemaFormat = "sql"   // SQL DDL format
)

// ParseFormat maps a format name to a SchemaFormat, defaulting to info
func ParseFormat(name string) SchemaFormat {
	switch SchemaFormat(name) {
	case FormatSQL:
		return FormatSQL
	case FormatTable:
		return FormatTable
	default:
		return FormatInfo
	}
}

// SchemaResult contains the extracted schema in the requested format
type SchemaResult struct {
	// Tables contains parsed table information (for info and table formats)
	Tables []Table

	// RawSQL contains the raw SQL DDL (for sql format)
	RawSQL string

	// Format indicates which format was used
	Format SchemaFormat
}

// ProviderRegistry manages available schema providers
type ProviderRegistry struct {
	providers map[string]SchemaProvider
}

// NewProviderRegistry creates a new provider registry
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]SchemaProvider),
	}
}

// Register adds a provider to the registry
func (r *ProviderRegistry) Register(provider SchemaProvider) {
	r.providers[provider.Name()] = provider
}

// Get retrieves a provider by name
func (r *ProviderRegistry) Get(name string) (SchemaProvider, bool) {
	provider, exists := r.providers[name]
	return provider, exists
}

// ListAvailable returns the providers usable with d, sorted by name
func (r *ProviderRegistry) ListAvailable(d dialect.Dialect) []string {
	var available []string
	for name, provider := range r.providers {
		if provider.IsAvailable(d) {
			available = append(available, name)
		}
	}
	sort.Strings(available)
	return available
}
