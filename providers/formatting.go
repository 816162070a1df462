package providers

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/alc6/h2schema/dialect"
)

// FormatSchemaInfo formats schema as human-readable text
func FormatSchemaInfo(tables []Table) string {
	var sb strings.Builder

	for _, t := range tables {
		sb.WriteString(fmt.Sprintf("Table: %s\n", t.Name))
		sb.WriteString("Columns:\n")

		for _, col := range t.Columns {
			nullable := "NOT NULL"
			if col.Nullable {
				nullable = "NULL"
			}

			pk := ""
			if col.PrimaryKey {
				pk = " (PRIMARY KEY)"
			}

			defaultVal := ""
			if col.Default.Valid {
				defaultVal = fmt.Sprintf(" DEFAULT %s", col.Default.String)
			}

			sb.WriteString(fmt.Sprintf("  - %s %s %s%s%s\n",
				col.Name, strings.ToUpper(col.SQLType), nullable, defaultVal, pk))
		}

		writeIndexInfo(&sb, t)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatSchemaTable formats each table as a boxed table of its columns
func FormatSchemaTable(tables []Table) string {
	var sb strings.Builder

	for _, t := range tables {
		tw := table.NewWriter()
		tw.SetStyle(table.StyleLight)
		tw.SetTitle(t.Name)
		tw.AppendHeader(table.Row{"Column", "Type", "Kind", "Limit", "Nullable", "Default", "Key"})

		for _, col := range t.Columns {
			limit := ""
			if col.Limit.Valid {
				limit = fmt.Sprintf("%d", col.Limit.Int64)
			}
			def := ""
			if col.Default.Valid {
				def = col.Default.String
			}
			key := ""
			if col.PrimaryKey {
				key = "PK"
			}
			tw.AppendRow(table.Row{col.Name, col.SQLType, string(col.Type), limit, col.Nullable, def, key})
		}

		sb.WriteString(tw.Render())
		sb.WriteString("\n")
		writeIndexInfo(&sb, t)
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeIndexInfo(sb *strings.Builder, t Table) {
	if len(t.Indexes) == 0 {
		return
	}
	sb.WriteString("Indexes:\n")
	for _, idx := range t.Indexes {
		unique := ""
		if idx.Unique {
			unique = " (UNIQUE)"
		}
		sb.WriteString(fmt.Sprintf("  - %s on (%s)%s\n",
			idx.Name, strings.Join(idx.Columns, ", "), unique))
	}
}

// FormatSchemaSQL formats schema as SQL CREATE statements, with column types
// regenerated by the dialect
func FormatSchemaSQL(d dialect.Dialect, tables []Table) string {
	var sb strings.Builder

	for _, t := range tables {
		sb.WriteString(fmt.Sprintf("create table %s (\n", t.Name))

		var columnDefs []string
		var primaryKeys []string

		for _, col := range t.Columns {
			var colDef strings.Builder
			colDef.WriteString(fmt.Sprintf("    %s %s", col.Name, columnType(d, col)))

			if !col.Nullable {
				colDef.WriteString(" not null")
			}

			if col.Default.Valid {
				colDef.WriteString(fmt.Sprintf(" default %s", columnDefault(d, col)))
			}

			columnDefs = append(columnDefs, colDef.String())

			if col.PrimaryKey {
				primaryKeys = append(primaryKeys, col.Name)
			}
		}

		sb.WriteString(strings.Join(columnDefs, ",\n"))

		if len(primaryKeys) > 0 {
			sb.WriteString(fmt.Sprintf(",\n    primary key (%s)", strings.Join(primaryKeys, ", ")))
		}

		sb.WriteString("\n);\n\n")

		for _, idx := range t.Indexes {
			unique := ""
			if idx.Unique {
				unique = "unique "
			}
			sb.WriteString(fmt.Sprintf("create %sindex %s on %s (%s);\n",
				unique, idx.Name, t.Name, strings.Join(idx.Columns, ", ")))
		}

		if len(t.Indexes) > 0 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// columnType emits the dialect's DDL type for col, falling back to the
// canonical reported type when the abstract type cannot be emitted
func columnType(d dialect.Dialect, col dialect.Column) string {
	if col.Type == dialect.TypeUnknown {
		return col.SQLType
	}
	// binary columns all normalize to the fallback limit, so the reported
	// size decides between binary(n) and blob
	if col.Type == dialect.TypeBinary && col.Limit == dialect.Int(dialect.BinaryLimit) {
		return binaryType(d, col)
	}
	sqlType, err := d.TypeToSQL(col.Type, col.Limit, col.Precision, col.Scale)
	if err != nil {
		return col.SQLType
	}
	return sqlType
}

// columnDefault re-quotes string defaults, which the dialect unquoted
// during normalization
func columnDefault(d dialect.Dialect, col dialect.Column) string {
	switch col.Type {
	case dialect.TypeString, dialect.TypeText:
		return d.Quote(col.Default.String, &col)
	}
	return col.Default.String
}

func binaryType(d dialect.Dialect, col dialect.Column) string {
	if !col.Size.Valid || col.Size.Int64 <= 0 {
		return col.SQLType
	}
	sqlType, err := d.TypeToSQL(col.Type, col.Size, col.Precision, col.Scale)
	if err != nil {
		return col.SQLType
	}
	if sqlType == "binary" {
		return fmt.Sprintf("%s(%d)", sqlType, col.Size.Int64)
	}
	return sqlType
}
