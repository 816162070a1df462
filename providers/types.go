package providers

import (
	"github.com/alc6/h2schema/adapter"
	"github.com/alc6/h2schema/dialect"
)

// Table represents a database table with its columns and indexes
type Table struct {
	Name    string
	Columns []dialect.Column
	Indexes []adapter.Index
}
