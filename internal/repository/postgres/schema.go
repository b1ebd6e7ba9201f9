package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the projects and reports tables if they don't exist.
// seq records insertion order, which is the order every listing returns.
// reports.project_id has no foreign key: report creation does not
// require the parent project to exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				description TEXT NOT NULL,
				seq BIGSERIAL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Projects),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				text TEXT NOT NULL,
				project_id TEXT NOT NULL,
				seq BIGSERIAL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Reports),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_project_id_idx ON %s (project_id)`,
			tables.Reports, tables.Reports),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropTables drops both tables for the configured prefix
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.Reports, tables.Projects} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// ClearData deletes every row but keeps the schema
func ClearData(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	if _, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE %s, %s", tables.Reports, tables.Projects)); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	return nil
}
