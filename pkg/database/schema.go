package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Schema statements shared by both backends. The unique index on the
// applicant identity triple and the composite primary key on
// (program, date, applicant) close the check-then-insert race at the
// storage layer.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS programs (
		id {{serial}},
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		budget_places INTEGER NOT NULL,
		commission_date TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS applicants (
		id {{serial}},
		full_name TEXT NOT NULL,
		math_score INTEGER NOT NULL DEFAULT 0,
		russian_score INTEGER NOT NULL DEFAULT 0,
		informatics_score INTEGER NOT NULL DEFAULT 0,
		total_score INTEGER NOT NULL DEFAULT 0,
		priority INTEGER NOT NULL DEFAULT 1,
		consent BOOLEAN NOT NULL DEFAULT FALSE,
		program TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_applicants_identity
		ON applicants (full_name, total_score, program)`,
	`CREATE TABLE IF NOT EXISTS list_applicants (
		applicant_id INTEGER PRIMARY KEY,
		full_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS competitive_list_entries (
		applicant_id INTEGER NOT NULL,
		program_id INTEGER NOT NULL REFERENCES programs (id),
		list_date TEXT NOT NULL,
		consent BOOLEAN NOT NULL DEFAULT FALSE,
		priority INTEGER NOT NULL DEFAULT 1,
		physics_ict_score INTEGER NOT NULL DEFAULT 0,
		russian_score INTEGER NOT NULL DEFAULT 0,
		math_score INTEGER NOT NULL DEFAULT 0,
		achievements_score INTEGER NOT NULL DEFAULT 0,
		total_score INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (program_id, list_date, applicant_id)
	)`,
}

// Migrate creates the schema if it does not exist yet. The auto-increment
// primary key spelling is the only dialect difference between the backends.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		serial = "SERIAL PRIMARY KEY"
	}

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, strings.ReplaceAll(stmt, "{{serial}}", serial)); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	return nil
}
