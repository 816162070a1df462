package main

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/alc6/h2schema/dialect"
)

// normalizedType is what the H2 dialect makes of a reported column type
type normalizedType struct {
	SQLType   string  `json:"sql_type"`
	Type      string  `json:"type"`
	Limit     *int64  `json:"limit,omitempty"`
	Precision *int64  `json:"precision,omitempty"`
	Scale     *int64  `json:"scale,omitempty"`
	Default   *string `json:"default,omitempty"`
}

func typeToSQL(symbol string, limit, precision, scale sql.NullInt64) (string, error) {
	return dialect.NewH2().TypeToSQL(dialect.Type(strings.ToLower(symbol)), limit, precision, scale)
}

func normalizeType(sqlType string, def sql.NullString) normalizedType {
	col := dialect.Column{SQLType: sqlType, Default: def}
	dialect.NormalizeColumn(dialect.NewH2(), &col)

	n := normalizedType{
		SQLType:   col.SQLType,
		Type:      string(col.Type),
		Limit:     nullablePtr(col.Limit),
		Precision: nullablePtr(col.Precision),
		Scale:     nullablePtr(col.Scale),
	}
	if col.Default.Valid {
		n.Default = &col.Default.String
	}
	if n.Type == "" {
		n.Type = "unknown"
	}
	return n
}

func (n normalizedType) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "sql_type:  %s\n", n.SQLType)
	fmt.Fprintf(&sb, "type:      %s\n", n.Type)
	fmt.Fprintf(&sb, "limit:     %s\n", formatPtr(n.Limit))
	fmt.Fprintf(&sb, "precision: %s\n", formatPtr(n.Precision))
	fmt.Fprintf(&sb, "scale:     %s\n", formatPtr(n.Scale))
	if n.Default != nil {
		fmt.Fprintf(&sb, "default:   %s\n", *n.Default)
	} else {
		sb.WriteString("default:   nil\n")
	}
	return sb.String()
}

func nullablePtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func formatPtr(p *int64) string {
	if p == nil {
		return "nil"
	}
	return fmt.Sprintf("%d", *p)
}
