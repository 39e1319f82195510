package match

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjc08/QuickFileFinder/internal/types"
)

func createTestDB(t *testing.T, name string, stmts ...string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), name)

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return dbPath
}

func TestIsTextColumn(t *testing.T) {
	tests := []struct {
		declType string
		want     bool
	}{
		{"", true},
		{"TEXT", true},
		{"varchar(255)", true},
		{"NCHAR(10)", true},
		{"CLOB", true},
		{"INTEGER", false},
		{"REAL", false},
		{"BLOB", false},
		{"NUMERIC", false},
	}

	for _, tt := range tests {
		t.Run(tt.declType, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTextColumn(tt.declType))
		})
	}
}

func TestDatabase(t *testing.T) {
	ctx := context.Background()

	t.Run("content match in text column", func(t *testing.T) {
		path := createTestDB(t, "users.db",
			`CREATE TABLE Users (Id INTEGER PRIMARY KEY, Name TEXT, Score INTEGER)`,
			`INSERT INTO Users (Name, Score) VALUES ('needle works', 1), ('plain', 2), ('another NEEDLE', 3)`,
		)

		out := Database(ctx, NewPolicy("needle", false), path)
		require.True(t, out.Matched(), out.Reason())
		assert.Equal(t, types.MatchKindDatabase, out.Record.Kind)
		assert.Equal(t, "table Users, column Name, 2 matches", out.Record.Detail)
	})

	t.Run("numeric column is not queried", func(t *testing.T) {
		path := createTestDB(t, "typed.db",
			`CREATE TABLE Items (Code INTEGER, Label TEXT)`,
			`INSERT INTO Items (Code, Label) VALUES ('needle', 'plain')`,
		)

		out := Database(ctx, NewPolicy("needle", false), path)
		assert.False(t, out.Matched())
		assert.Equal(t, SkipNoMatch, out.Skip)
	})

	t.Run("untyped column is treated as text", func(t *testing.T) {
		path := createTestDB(t, "untyped.sqlite",
			`CREATE TABLE notes (body)`,
			`INSERT INTO notes VALUES ('has needle')`,
		)

		out := Database(ctx, NewPolicy("needle", false), path)
		require.True(t, out.Matched())
		assert.Equal(t, "table notes, column body, 1 matches", out.Record.Detail)
	})

	t.Run("table and column names", func(t *testing.T) {
		path := createTestDB(t, "schema.db",
			`CREATE TABLE needle_log (id INTEGER, needle_count INTEGER)`,
		)

		out := Database(ctx, NewPolicy("needle", false), path)
		require.True(t, out.Matched())
		assert.Equal(t, "table name match: needle_log\ncolumn name match: needle_log.needle_count", out.Record.Detail)
	})

	t.Run("case sensitive query", func(t *testing.T) {
		path := createTestDB(t, "case.db",
			`CREATE TABLE t (v TEXT)`,
			`INSERT INTO t VALUES ('needle'), ('Needle')`,
		)

		out := Database(ctx, NewPolicy("Needle", true), path)
		require.True(t, out.Matched())
		assert.Equal(t, "table t, column v, 1 matches", out.Record.Detail)

		out = Database(ctx, NewPolicy("NEEDLE", true), path)
		assert.False(t, out.Matched())
	})

	t.Run("like wildcards are literal", func(t *testing.T) {
		path := createTestDB(t, "wild.db",
			`CREATE TABLE t (v TEXT)`,
			`INSERT INTO t VALUES ('500'), ('a_b'), ('axb')`,
		)

		assert.False(t, Database(ctx, NewPolicy("50%", false), path).Matched())

		out := Database(ctx, NewPolicy("a_b", false), path)
		require.True(t, out.Matched())
		assert.Equal(t, "table t, column v, 1 matches", out.Record.Detail)
	})

	t.Run("quoted identifiers", func(t *testing.T) {
		path := createTestDB(t, "quoted.db",
			`CREATE TABLE "odd ""table""" ("my col" TEXT)`,
			`INSERT INTO "odd ""table""" VALUES ('needle')`,
		)

		out := Database(ctx, NewPolicy("needle", false), path)
		require.True(t, out.Matched())
		assert.Equal(t, `table odd "table", column my col, 1 matches`, out.Record.Detail)
	})

	t.Run("matches across tables share one record", func(t *testing.T) {
		path := createTestDB(t, "multi.db",
			`CREATE TABLE a (v TEXT)`,
			`CREATE TABLE b (w VARCHAR(20))`,
			`INSERT INTO a VALUES ('needle')`,
			`INSERT INTO b VALUES ('needle'), ('needle')`,
		)

		out := Database(ctx, NewPolicy("needle", false), path)
		require.True(t, out.Matched())
		assert.Equal(t, "table a, column v, 1 matches\ntable b, column w, 2 matches", out.Record.Detail)
	})

	t.Run("not a database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fake.db")
		require.NoError(t, os.WriteFile(path, []byte("this is definitely not sqlite needle"), 0o644))

		out := Database(ctx, NewPolicy("needle", false), path)
		assert.False(t, out.Matched())
		assert.Equal(t, SkipNotDatabase, out.Skip)
	})

	t.Run("read-only open does not create files", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.db")

		out := Database(ctx, NewPolicy("needle", false), path)
		assert.False(t, out.Matched())
		assert.Equal(t, SkipNotDatabase, out.Skip)
		assert.NoFileExists(t, path)
	})

	t.Run("target file is left untouched", func(t *testing.T) {
		path := createTestDB(t, "stable.db",
			`CREATE TABLE t (v TEXT)`,
			`INSERT INTO t VALUES ('needle')`,
		)
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		require.True(t, Database(ctx, NewPolicy("needle", false), path).Matched())

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}
