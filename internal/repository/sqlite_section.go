package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/proposal/internal/db"
	"github.com/alexanderramin/proposal/internal/domain"
)

// SQLiteSectionRepo implements SectionRepo using a SQLite database.
type SQLiteSectionRepo struct {
	db db.DBTX
}

// NewSQLiteSectionRepo creates a new SQLiteSectionRepo.
func NewSQLiteSectionRepo(db db.DBTX) *SQLiteSectionRepo {
	return &SQLiteSectionRepo{db: db}
}

// ReplaceForSession deletes the session's sections and inserts the given
// ones. Callers that need atomicity run it inside a UnitOfWork.
func (r *SQLiteSectionRepo) ReplaceForSession(ctx context.Context, sessionID string, sections []domain.ProposalSection) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM proposal_sections WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing proposal sections: %w", err)
	}
	for i := range sections {
		sec := &sections[i]
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO proposal_sections (session_id, section_name, content, last_updated) VALUES (?, ?, ?, ?)`,
			sessionID, sec.Name, sec.Content, formatTimestamp(sec.UpdatedAt))
		if err != nil {
			return fmt.Errorf("inserting proposal section %q: %w", sec.Name, err)
		}
		if sec.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("reading proposal section id: %w", err)
		}
		sec.SessionID = sessionID
	}
	return nil
}

func (r *SQLiteSectionRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.ProposalSection, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, section_name, content, last_updated FROM proposal_sections WHERE session_id = ? ORDER BY id`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing proposal sections: %w", err)
	}
	defer rows.Close()

	var sections []domain.ProposalSection
	for rows.Next() {
		var sec domain.ProposalSection
		var updated string
		if err := rows.Scan(&sec.ID, &sec.SessionID, &sec.Name, &sec.Content, &updated); err != nil {
			return nil, fmt.Errorf("scanning proposal section: %w", err)
		}
		if sec.UpdatedAt, err = parseTimestamp("last_updated", updated); err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating proposal sections: %w", err)
	}
	return sections, nil
}
