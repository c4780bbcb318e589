package postgres

import (
	"context"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Migrate applies every *.sql file of fsys not yet recorded in schema_migrations, in name order.
// Each file runs in its own transaction together with its bookkeeping row.
func Migrate(ctx context.Context, db *sqlx.DB, fsys fs.FS) ([]string, error) {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			migration_name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)`); err != nil {
		return nil, errors.Wrap(err, "create schema_migrations")
	}

	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, errors.Wrap(err, "list migrations")
	}
	sort.Strings(files)

	var names []string
	if err := db.SelectContext(ctx, &names, `SELECT migration_name FROM schema_migrations`); err != nil {
		return nil, errors.Wrap(err, "load applied migrations")
	}
	applied := make(map[string]bool, len(names))
	for _, n := range names {
		applied[n] = true
	}

	var ran []string
	for _, file := range files {
		if applied[file] {
			continue
		}
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return ran, errors.Wrapf(err, "read migration %s", file)
		}
		if strings.TrimSpace(string(content)) == "" {
			continue
		}
		if err := applyMigration(ctx, db, file, string(content)); err != nil {
			return ran, err
		}
		ran = append(ran, file)
	}
	return ran, nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, name, content string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "begin migration %s", name)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, content); err != nil {
		return errors.Wrapf(err, "execute migration %s", name)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (migration_name) VALUES ($1)`, name); err != nil {
		return errors.Wrapf(err, "record migration %s", name)
	}
	return tx.Commit()
}
