package repository

import (
	"context"

	"github.com/alexanderramin/proposal/internal/domain"
)

// ProposalSessionRepo is the session store: one row per proposal session.
type ProposalSessionRepo interface {
	Create(ctx context.Context, s *domain.ProposalSession) error
	GetByID(ctx context.Context, id string) (*domain.ProposalSession, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.ProposalSession, error)
	// UpdateFields overwrites the 12 proposal fields together with title and progress.
	UpdateFields(ctx context.Context, s *domain.ProposalSession) error
	UpdateLatestDocument(ctx context.Context, id, doc string) error
	UpdateStatus(ctx context.Context, id string, status domain.SessionStatus) error
	Ping(ctx context.Context) error
}

// ChatMessageRepo is the append-only chat log. There is deliberately no
// update or delete.
type ChatMessageRepo interface {
	Append(ctx context.Context, m *domain.ChatMessage) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
	CountBySession(ctx context.Context, sessionID string) (int, error)
}

// SectionRepo stores the headed sections of a session's latest document.
type SectionRepo interface {
	ReplaceForSession(ctx context.Context, sessionID string, sections []domain.ProposalSection) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.ProposalSection, error)
}
