package match

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/sjc08/QuickFileFinder/internal/types"
	"github.com/sjc08/QuickFileFinder/internal/uri"
)

// textTypeMarkers are the declared-type fragments that make a column
// eligible for content search.
var textTypeMarkers = []string{"text", "char", "clob"}

type column struct {
	name     string
	declType string
}

// IsTextColumn reports whether a column with the declared type holds text.
// Untyped columns count as text, following SQLite's dynamic typing.
func IsTextColumn(declType string) bool {
	t := strings.ToLower(strings.TrimSpace(declType))
	if t == "" {
		return true
	}
	for _, marker := range textTypeMarkers {
		if strings.Contains(t, marker) {
			return true
		}
	}
	return false
}

// Database opens the SQLite file at path read-only and reports table name,
// column name and row content matches as a single record.
//
// Row content is counted inside the database engine with one bound LIKE
// query per text column. Table and column identifiers only ever come from
// the file's own schema. A failing column query skips that column.
func Database(ctx context.Context, p *Policy, path string) Outcome {
	db, err := sql.Open("sqlite", uri.SQLiteReadOnly(path))
	if err != nil {
		return skipped(SkipNotDatabase, err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	tables, err := listTables(ctx, db)
	if err != nil {
		return skipped(SkipNotDatabase, err)
	}

	var details []string
	for _, table := range tables {
		if p.Contains(table) {
			details = append(details, "table name match: "+table)
		}

		columns, err := listColumns(ctx, db, table)
		if err != nil {
			continue
		}
		known := make(map[string]bool, len(columns))
		for _, c := range columns {
			known[c.name] = true
		}

		for _, c := range columns {
			if p.Contains(c.name) {
				details = append(details, fmt.Sprintf("column name match: %s.%s", table, c.name))
			}
			if !IsTextColumn(c.declType) {
				continue
			}
			n, err := countMatches(ctx, db, p, table, c.name, known)
			if err != nil || n == 0 {
				continue
			}
			details = append(details, fmt.Sprintf("table %s, column %s, %d matches", table, c.name, n))
		}
	}

	if len(details) == 0 {
		return skipped(SkipNoMatch, nil)
	}
	return matched(path, types.MatchKindDatabase, strings.Join(details, "\n"))
}

func listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite\_%' ESCAPE '\' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return tables, nil
}

func listColumns(ctx context.Context, db *sql.DB, table string) ([]column, error) {
	rows, err := db.QueryContext(ctx, `SELECT name, type FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var columns []column
	for rows.Next() {
		var c column
		if err := rows.Scan(&c.name, &c.declType); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns of %s: %w", table, err)
	}
	return columns, nil
}

// countMatches counts rows of table whose col contains the search text. col
// must be one of the introspected column names in known.
func countMatches(ctx context.Context, db *sql.DB, p *Policy, table, col string, known map[string]bool) (int64, error) {
	if !known[col] {
		return 0, fmt.Errorf("column %q is not part of table %q", col, table)
	}

	where, args := p.SQLPredicate(quoteIdent(col))
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", quoteIdent(table), where)

	var n int64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s.%s: %w", table, col, err)
	}
	return n, nil
}

// quoteIdent quotes a schema identifier for interpolation into SQL.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
