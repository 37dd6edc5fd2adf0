package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/proposal/internal/db"
	"github.com/alexanderramin/proposal/internal/domain"
)

// SQLiteProposalSessionRepo implements ProposalSessionRepo using a SQLite database.
type SQLiteProposalSessionRepo struct {
	db db.DBTX
}

// NewSQLiteProposalSessionRepo creates a new SQLiteProposalSessionRepo.
func NewSQLiteProposalSessionRepo(db db.DBTX) *SQLiteProposalSessionRepo {
	return &SQLiteProposalSessionRepo{db: db}
}

const sessionColumns = `id, title, status, progress,
	client_name, project_title, problem_statement, proposed_solution, previous_experience,
	objectives, implementation_plan, benefits, timeline, budget, deliverables, technologies,
	latest_document, created_at, updated_at`

func (r *SQLiteProposalSessionRepo) Create(ctx context.Context, s *domain.ProposalSession) error {
	query := `INSERT INTO proposal_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	f := s.Fields
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Title,
		string(s.Status),
		s.Progress,
		f.ClientName,
		f.ProjectTitle,
		f.ProblemStatement,
		f.ProposedSolution,
		nullableString(f.PreviousExperience),
		f.Objectives,
		f.ImplementationPlan,
		f.Benefits,
		f.Timeline,
		nullableString(f.Budget),
		f.Deliverables,
		f.Technologies,
		nullableString(s.LatestDocument),
		formatTimestamp(s.CreatedAt),
		formatTimestamp(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting proposal session: %w", err)
	}
	return nil
}

func (r *SQLiteProposalSessionRepo) GetByID(ctx context.Context, id string) (*domain.ProposalSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM proposal_sessions WHERE id = ?`
	s, err := scanProposalSession(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("proposal session %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteProposalSessionRepo) List(ctx context.Context, includeArchived bool) ([]*domain.ProposalSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM proposal_sessions`
	if !includeArchived {
		query += ` WHERE status <> 'archived'`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing proposal sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.ProposalSession
	for rows.Next() {
		s, err := scanProposalSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating proposal sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteProposalSessionRepo) UpdateFields(ctx context.Context, s *domain.ProposalSession) error {
	query := `UPDATE proposal_sessions SET
		title = ?, progress = ?,
		client_name = ?, project_title = ?, problem_statement = ?, proposed_solution = ?,
		previous_experience = ?, objectives = ?, implementation_plan = ?, benefits = ?,
		timeline = ?, budget = ?, deliverables = ?, technologies = ?,
		updated_at = ?
		WHERE id = ?`
	f := s.Fields
	res, err := r.db.ExecContext(ctx, query,
		s.Title,
		s.Progress,
		f.ClientName,
		f.ProjectTitle,
		f.ProblemStatement,
		f.ProposedSolution,
		nullableString(f.PreviousExperience),
		f.Objectives,
		f.ImplementationPlan,
		f.Benefits,
		f.Timeline,
		nullableString(f.Budget),
		f.Deliverables,
		f.Technologies,
		formatTimestamp(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating proposal fields: %w", err)
	}
	return requireAffected(res, "proposal session "+s.ID)
}

func (r *SQLiteProposalSessionRepo) UpdateLatestDocument(ctx context.Context, id, doc string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE proposal_sessions SET latest_document = ?, updated_at = ? WHERE id = ?`,
		doc, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating latest document: %w", err)
	}
	return requireAffected(res, "proposal session "+id)
}

func (r *SQLiteProposalSessionRepo) UpdateStatus(ctx context.Context, id string, status domain.SessionStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE proposal_sessions SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating session status: %w", err)
	}
	return requireAffected(res, "proposal session "+id)
}

// Ping runs a trivial query to confirm the store is reachable.
func (r *SQLiteProposalSessionRepo) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

func scanProposalSession(row rowScanner) (*domain.ProposalSession, error) {
	var s domain.ProposalSession
	var status, createdAt, updatedAt string
	var prevExp, budget, latest sql.NullString

	err := row.Scan(
		&s.ID, &s.Title, &status, &s.Progress,
		&s.Fields.ClientName, &s.Fields.ProjectTitle, &s.Fields.ProblemStatement, &s.Fields.ProposedSolution, &prevExp,
		&s.Fields.Objectives, &s.Fields.ImplementationPlan, &s.Fields.Benefits, &s.Fields.Timeline, &budget,
		&s.Fields.Deliverables, &s.Fields.Technologies,
		&latest, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning proposal session: %w", err)
	}

	s.Status = domain.SessionStatus(status)
	s.Fields.PreviousExperience = stringPtr(prevExp)
	s.Fields.Budget = stringPtr(budget)
	s.LatestDocument = stringPtr(latest)

	if s.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
