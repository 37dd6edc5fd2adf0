package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list runs on each open.
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
	if err := migrateBackfillTitles(db); err != nil {
		return fmt.Errorf("backfilling session titles: %w", err)
	}
	return nil
}

// migrateBackfillTitles fills the title column for sessions created before it
// existed, using the extracted project title.
func migrateBackfillTitles(db *sql.DB) error {
	_, err := db.Exec(`UPDATE proposal_sessions
		SET title = project_title
		WHERE title = '' AND project_title <> ''`)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS proposal_sessions (
		id                  TEXT PRIMARY KEY,
		status              TEXT NOT NULL DEFAULT 'active'
		                    CHECK(status IN ('active','inactive','archived')),
		client_name         TEXT NOT NULL DEFAULT '',
		project_title       TEXT NOT NULL DEFAULT '',
		problem_statement   TEXT NOT NULL DEFAULT '',
		proposed_solution   TEXT NOT NULL DEFAULT '',
		previous_experience TEXT,
		objectives          TEXT NOT NULL DEFAULT '',
		implementation_plan TEXT NOT NULL DEFAULT '',
		benefits            TEXT NOT NULL DEFAULT '',
		timeline            TEXT NOT NULL DEFAULT '',
		budget              TEXT,
		deliverables        TEXT NOT NULL DEFAULT '',
		technologies        TEXT NOT NULL DEFAULT '',
		latest_document     TEXT,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_proposal_sessions_status ON proposal_sessions(status)`,

	`CREATE TABLE IF NOT EXISTS chat_messages (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES proposal_sessions(id) ON DELETE CASCADE,
		role       TEXT NOT NULL CHECK(role IN ('user','assistant')),
		message    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_chat_messages_session ON chat_messages(session_id, seq)`,

	`CREATE TABLE IF NOT EXISTS proposal_sections (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id   TEXT NOT NULL REFERENCES proposal_sessions(id) ON DELETE CASCADE,
		section_name TEXT NOT NULL,
		content      TEXT NOT NULL,
		last_updated TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_proposal_sections_session ON proposal_sections(session_id)`,

	// Columns added after the first release.
	`ALTER TABLE proposal_sessions ADD COLUMN title TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE proposal_sessions ADD COLUMN progress INTEGER NOT NULL DEFAULT 0`,
}
