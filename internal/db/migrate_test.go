package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"proposal_sessions", "chat_messages", "proposal_sections"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{
		"idx_proposal_sessions_status",
		"idx_chat_messages_session",
		"idx_proposal_sections_session",
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_RejectsUnknownRole(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO proposal_sessions (id, created_at, updated_at) VALUES ('s1', 'x', 'x')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO chat_messages (session_id, role, message, created_at) VALUES ('s1', 'system', 'hi', 'x')`)
	assert.Error(t, err, "role CHECK constraint should reject 'system'")
}

func TestMigrate_ForeignKeyOnChatMessages(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO chat_messages (session_id, role, message, created_at) VALUES ('missing', 'user', 'hi', 'x')`)
	assert.Error(t, err, "foreign key should reject unknown session")
}

func TestMigrate_UpgradesLegacySessionsTable(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	// First-release schema: no title or progress columns.
	_, err = db.Exec(`CREATE TABLE proposal_sessions (
		id                  TEXT PRIMARY KEY,
		status              TEXT NOT NULL DEFAULT 'active',
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
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO proposal_sessions (id, project_title, created_at, updated_at)
		VALUES ('legacy', 'Website Redesign', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var title string
	var progress int
	err = db.QueryRow(`SELECT title, progress FROM proposal_sessions WHERE id = 'legacy'`).Scan(&title, &progress)
	require.NoError(t, err)
	assert.Equal(t, "Website Redesign", title)
	assert.Equal(t, 0, progress)
}
