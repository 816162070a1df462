package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alc6/h2schema/providers"
)

// MockDatabaseManager is a mock implementation of DatabaseManager for testing
type MockDatabaseManager struct {
	SetupFunc         func(ctx context.Context) error
	CloseFunc         func(ctx context.Context) error
	RunMigrationsFunc func(ctx context.Context, migrations []Migration) error
	GetDBFunc         func() *sql.DB
	ConnStr           string

	// Track calls for verification
	SetupCalled         bool
	CloseCalled         bool
	RunMigrationsCalled bool
	GetDBCalled         bool
}

func (m *MockDatabaseManager) Setup(ctx context.Context) error {
	m.SetupCalled = true
	if m.SetupFunc != nil {
		return m.SetupFunc(ctx)
	}
	return nil
}

func (m *MockDatabaseManager) Close(ctx context.Context) error {
	m.CloseCalled = true
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx)
	}
	return nil
}

func (m *MockDatabaseManager) RunMigrations(ctx context.Context, migrations []Migration) error {
	m.RunMigrationsCalled = true
	if m.RunMigrationsFunc != nil {
		return m.RunMigrationsFunc(ctx, migrations)
	}
	return nil
}

func (m *MockDatabaseManager) GetDB() *sql.DB {
	m.GetDBCalled = true
	if m.GetDBFunc != nil {
		return m.GetDBFunc()
	}
	return nil
}

func (m *MockDatabaseManager) GetConnectionString() string {
	return m.ConnStr
}

// MockSchemaExtractor is a mock implementation of SchemaExtractor for testing
type MockSchemaExtractor struct {
	ExtractSchemaFunc func(ctx context.Context, db *sql.DB, format providers.SchemaFormat) (*providers.SchemaResult, error)
	RenderFunc        func(result *providers.SchemaResult) string
}

func (m *MockSchemaExtractor) ExtractSchema(ctx context.Context, db *sql.DB, format providers.SchemaFormat) (*providers.SchemaResult, error) {
	if m.ExtractSchemaFunc != nil {
		return m.ExtractSchemaFunc(ctx, db, format)
	}
	return &providers.SchemaResult{Format: format}, nil
}

func (m *MockSchemaExtractor) Render(result *providers.SchemaResult) string {
	if m.RenderFunc != nil {
		return m.RenderFunc(result)
	}
	return ""
}

// MockMigrationReader is a mock implementation of MigrationReader for testing
type MockMigrationReader struct {
	DiscoverMigrationsFunc func(dir string) ([]Migration, error)
}

func (m *MockMigrationReader) DiscoverMigrations(dir string) ([]Migration, error) {
	if m.DiscoverMigrationsFunc != nil {
		return m.DiscoverMigrationsFunc(dir)
	}
	return []Migration{}, nil
}

// SimulateError simulates various database errors for testing
func SimulateError(errType string) error {
	switch errType {
	case "connection":
		return fmt.Errorf("connection refused")
	case "syntax":
		return fmt.Errorf("Syntax error in SQL statement \"CREATE TABLE [*]INVALID\"")
	case "permission":
		return fmt.Errorf("Not enough rights for object")
	default:
		return fmt.Errorf("simulated error: %s", errType)
	}
}
