package service

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/proposal/internal/cache"
	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/alexanderramin/proposal/internal/repository"
)

type sessionService struct {
	sessions repository.ProposalSessionRepo
	messages repository.ChatMessageRepo
	sections repository.SectionRepo
	cache    cache.DocumentCache
}

// NewSessionService builds the session service. docCache may be nil; when
// set, archiving a session evicts its cached document.
func NewSessionService(
	sessions repository.ProposalSessionRepo,
	messages repository.ChatMessageRepo,
	sections repository.SectionRepo,
	docCache cache.DocumentCache,
) SessionService {
	if docCache == nil {
		docCache = cache.Noop{}
	}
	return &sessionService{sessions: sessions, messages: messages, sections: sections, cache: docCache}
}

func (s *sessionService) Get(ctx context.Context, id string) (*domain.ProposalSession, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *sessionService) List(ctx context.Context, includeArchived bool) ([]*domain.ProposalSession, error) {
	return s.sessions.List(ctx, includeArchived)
}

// History returns the session's chat log in sequence order.
func (s *sessionService) History(ctx context.Context, id string) ([]domain.ChatMessage, error) {
	if _, err := s.sessions.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.messages.ListBySession(ctx, id)
}

func (s *sessionService) Sections(ctx context.Context, id string) ([]domain.ProposalSection, error) {
	if _, err := s.sessions.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.sections.ListBySession(ctx, id)
}

func (s *sessionService) SetStatus(ctx context.Context, id string, status domain.SessionStatus) error {
	if _, err := domain.ParseSessionStatus(string(status)); err != nil {
		return &ValidationError{Field: "status", Reason: err.Error()}
	}
	if err := s.sessions.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	if status == domain.SessionArchived {
		if err := s.cache.Delete(ctx, id); err != nil {
			slog.WarnContext(ctx, "document cache evict failed", "session_id", id, "error", err)
		}
	}
	return nil
}

func (s *sessionService) Ping(ctx context.Context) error {
	return s.sessions.Ping(ctx)
}
