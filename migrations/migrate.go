// Package migrations embeds the fintrack schema and applies it with goose.
//
// The schema is two tables: users (accounts, password digests, verification
// state) and financial_entries (the per-user income and expense records).
// Migrate runs at server startup, so a fresh database is usable without any
// out-of-band provisioning step.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var schema embed.FS

// Migrate brings the connected database up to the latest schema version.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(schema)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
