package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Migration struct {
	Name     string
	UpFile   string
	DownFile string
}

func ParseMigrations(migrationDir string) ([]Migration, error) {
	slog.Debug("scanning migration directory", "directory", migrationDir)
	upFiles := make(map[string]string)
	downFiles := make(map[string]string)

	err := filepath.WalkDir(migrationDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		fileName := d.Name()
		if baseName, ok := strings.CutSuffix(fileName, ".up.sql"); ok {
			upFiles[baseName] = path
			slog.Debug("found up migration", "name", baseName, "file", path)
		} else if baseName, ok := strings.CutSuffix(fileName, ".down.sql"); ok {
			downFiles[baseName] = path
			slog.Debug("found down migration", "name", baseName, "file", path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk migration directory: %w", err)
	}

	migrations := make([]Migration, 0, len(upFiles))
	for baseName, upFile := range upFiles {
		migrations = append(migrations, Migration{
			Name:     baseName,
			UpFile:   upFile,
			DownFile: downFiles[baseName],
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Name < migrations[j].Name
	})

	slog.Info("parsed migrations", "count", len(migrations), "upFiles", len(upFiles), "downFiles", len(downFiles))
	return migrations, nil
}

// runMigrations applies each up file one statement at a time
func runMigrations(ctx context.Context, db *sql.DB, migrations []Migration) error {
	if db == nil {
		return fmt.Errorf("database is not set up")
	}

	for _, migration := range migrations {
		slog.Info("running migration", "name", migration.Name, "file", migration.UpFile)

		content, err := os.ReadFile(migration.UpFile)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", migration.UpFile, err)
		}

		for i, stmt := range splitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to execute migration %s (statement %d): %w", migration.Name, i+1, err)
			}
		}

		slog.Debug("migration completed successfully", "name", migration.Name)
	}

	slog.Info("all migrations completed successfully", "count", len(migrations))
	return nil
}

// splitStatements splits a script on semicolons that are not inside quotes
// or comments. Chunks holding only comments or whitespace are dropped.
func splitStatements(script string) []string {
	var (
		statements []string
		current    strings.Builder
		hasCode    bool
	)

	flush := func() {
		if hasCode {
			statements = append(statements, strings.TrimSpace(current.String()))
		}
		current.Reset()
		hasCode = false
	}

	for i := 0; i < len(script); i++ {
		c := script[i]
		switch {
		case c == '\'' || c == '"':
			end := i + 1
			for end < len(script) {
				if script[end] == c {
					if end+1 < len(script) && script[end+1] == c {
						end += 2
						continue
					}
					break
				}
				end++
			}
			if end >= len(script) {
				end = len(script) - 1
			}
			current.WriteString(script[i : end+1])
			hasCode = true
			i = end
		case c == '-' && i+1 < len(script) && script[i+1] == '-':
			end := strings.IndexByte(script[i:], '\n')
			if end < 0 {
				end = len(script) - i
			}
			current.WriteString(script[i : i+end])
			i += end - 1
		case c == '/' && i+1 < len(script) && script[i+1] == '*':
			end := strings.Index(script[i+2:], "*/")
			stop := len(script)
			if end >= 0 {
				stop = i + 2 + end + 2
			}
			current.WriteString(script[i:stop])
			i = stop - 1
		case c == ';':
			flush()
		default:
			if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
				hasCode = true
			}
			current.WriteByte(c)
		}
	}
	flush()

	return statements
}
