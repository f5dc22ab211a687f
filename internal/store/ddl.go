package store

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/docflow-io/docflow/internal/doctype"
)

// tableName derives the backing table for a document type. The tab_ prefix
// keeps generated tables apart from anything else in the schema.
func tableName(docTypeName string) string {
	return "tab_" + toSnakeCase(docTypeName)
}

// seriesTable holds the per-prefix counters behind "series:" naming rules
const seriesTable = "tab_series"

// CreateTableSQL renders the DDL for one bound type. IF NOT EXISTS keeps
// re-running migration safe; the engine never alters or drops columns.
func (b *boundType) CreateTableSQL() string {
	var cols []string
	for _, c := range b.columns {
		line := fmt.Sprintf("  %s %s", quoteIdent(c.Name), c.SQLType)
		if c.NotNull {
			line += " NOT NULL"
		}
		if c.Default != "" {
			line += " DEFAULT " + c.Default
		}
		if c.Name == doctype.FieldID {
			line += " PRIMARY KEY"
		}
		cols = append(cols, line)
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)",
		quoteIdent(b.table), strings.Join(cols, ",\n"))
}

// seriesTableSQL renders the naming-series counter table
func seriesTableSQL() string {
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n"+
			"  %s VARCHAR(140) NOT NULL PRIMARY KEY,\n"+
			"  %s INTEGER NOT NULL DEFAULT 0\n"+
			")",
		quoteIdent(seriesTable), quoteIdent("prefix"), quoteIdent("current"))
}

// Migrate creates the backing table for every bound document type plus the
// shared series counter table. Run once at boot, after binding.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, seriesTableSQL()); err != nil {
		return fmt.Errorf("creating series table: %w", err)
	}

	for _, name := range s.registry.Names() {
		b, ok := s.bound[name]
		if !ok {
			continue
		}
		if _, err := s.db.ExecContext(ctx, b.CreateTableSQL()); err != nil {
			return fmt.Errorf("creating table for %s: %w", name, err)
		}
		s.log.Debug("materialized document type",
			zap.String("doctype", name),
			zap.String("table", b.table))
	}

	return nil
}

// toSnakeCase converts a document type name to snake_case
func toSnakeCase(s string) string {
	var result []rune
	runes := []rune(strings.ReplaceAll(s, " ", ""))

	for i, r := range runes {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := runes[i-1]
			if prev >= 'a' && prev <= 'z' {
				result = append(result, '_')
			} else if i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z' {
				result = append(result, '_')
			}
		}
		if r >= 'A' && r <= 'Z' {
			result = append(result, r+('a'-'A'))
		} else {
			result = append(result, r)
		}
	}
	return string(result)
}
