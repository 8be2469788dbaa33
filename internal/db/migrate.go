package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are re-run on every open,
// so each one must be idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		command     TEXT NOT NULL,
		jql         TEXT NOT NULL DEFAULT '',
		dry_run     INTEGER NOT NULL DEFAULT 0,
		status      TEXT NOT NULL DEFAULT 'running'
		            CHECK(status IN ('running','ok','failed')),
		error       TEXT NOT NULL DEFAULT '',
		item_count  INTEGER NOT NULL DEFAULT 0,
		started_at  TEXT NOT NULL,
		finished_at TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,

	`CREATE TABLE IF NOT EXISTS run_items (
		run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq        INTEGER NOT NULL CHECK(seq > 0),
		issue_key  TEXT NOT NULL,
		action     TEXT NOT NULL
		           CHECK(action IN ('assign','set_story_points')),
		user_name  TEXT NOT NULL DEFAULT '',
		hours      REAL NOT NULL DEFAULT 0,
		outcome    TEXT NOT NULL
		           CHECK(outcome IN ('applied','planned','failed')),
		error      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_run_items_issue ON run_items(issue_key)`,

	// Server the run targeted; journals written before multi-server
	// support have an empty value.
	`ALTER TABLE runs ADD COLUMN server TEXT NOT NULL DEFAULT ''`,
}
