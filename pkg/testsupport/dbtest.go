package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewBunDB wraps an in-memory SQLite database with the bun sqlite dialect.
func NewBunDB() (*bun.DB, error) {
	sqldb, err := NewSQLiteMemoryDB()
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// NewBunDBAt opens a file-backed SQLite database at the supplied path.
func NewBunDBAt(path string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// ApplyMigrations executes every .sql file in the supplied filesystem in
// lexical order.
func ApplyMigrations(ctx context.Context, db *bun.DB, migrations fs.FS) error {
	var files []string
	err := fs.WalkDir(migrations, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("testsupport: walking migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		script, err := fs.ReadFile(migrations, file)
		if err != nil {
			return fmt.Errorf("testsupport: reading %s: %w", file, err)
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("testsupport: applying %s: %w", file, err)
		}
	}
	return nil
}
