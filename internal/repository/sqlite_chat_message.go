package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/proposal/internal/db"
	"github.com/alexanderramin/proposal/internal/domain"
)

// SQLiteChatMessageRepo implements ChatMessageRepo using a SQLite database.
// Sequence numbers come from the AUTOINCREMENT primary key, so they are
// strictly increasing across the whole table and therefore per session.
type SQLiteChatMessageRepo struct {
	db db.DBTX
}

// NewSQLiteChatMessageRepo creates a new SQLiteChatMessageRepo.
func NewSQLiteChatMessageRepo(db db.DBTX) *SQLiteChatMessageRepo {
	return &SQLiteChatMessageRepo{db: db}
}

// Append writes m and sets m.Seq to the assigned sequence number.
func (r *SQLiteChatMessageRepo) Append(ctx context.Context, m *domain.ChatMessage) error {
	if !m.Role.Valid() {
		return fmt.Errorf("appending chat message: invalid role %q", m.Role)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_messages (session_id, role, message, created_at) VALUES (?, ?, ?, ?)`,
		m.SessionID, string(m.Role), m.Text, formatTimestamp(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("appending chat message: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading chat message seq: %w", err)
	}
	m.Seq = seq
	return nil
}

// ListBySession returns the full log for a session in sequence order.
func (r *SQLiteChatMessageRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, session_id, role, message, created_at FROM chat_messages WHERE session_id = ? ORDER BY seq`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		var role, createdAt string
		if err := rows.Scan(&m.Seq, &m.SessionID, &role, &m.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		m.Role = domain.MessageRole(role)
		if m.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat messages: %w", err)
	}
	return msgs, nil
}

func (r *SQLiteChatMessageRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_messages WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting chat messages: %w", err)
	}
	return n, nil
}
