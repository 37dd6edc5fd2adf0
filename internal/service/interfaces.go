package service

import (
	"context"

	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/alexanderramin/proposal/internal/intelligence"
)

// IntakeService runs the proposal-intake protocol: the question/answer
// dialogue, the extraction handoff and document rendering.
type IntakeService interface {
	BeginSession(ctx context.Context) (*TurnResult, error)
	Answer(ctx context.Context, sessionID, text string) (*TurnResult, error)
	GetFields(ctx context.Context, sessionID string) (*domain.ProposalFields, error)
	Render(ctx context.Context, sessionID string, opts RenderOptions) (string, error)
	RenderCustom(ctx context.Context, sessionID, instruction string) (string, error)
	GetLatestDocument(ctx context.Context, sessionID string) (string, error)
}

type SessionService interface {
	Get(ctx context.Context, id string) (*domain.ProposalSession, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.ProposalSession, error)
	History(ctx context.Context, id string) ([]domain.ChatMessage, error)
	Sections(ctx context.Context, id string) ([]domain.ProposalSection, error)
	SetStatus(ctx context.Context, id string, status domain.SessionStatus) error
	Ping(ctx context.Context) error
}

// RenderOptions are the style and tone modifiers of a regenerate request.
// Both are optional.
type RenderOptions struct {
	Style string
	Tone  string
}

// TurnResult is the outcome of BeginSession or Answer.
type TurnResult struct {
	SessionID  string
	Turn       intelligence.DialogueTurn
	Complete   bool
	Extraction ExtractionOutcome
}

// ExtractionOutcome records whether a turn triggered field extraction and
// how it went. A failed extraction never fails the turn; Err is then always
// an *intelligence.ExtractionError.
type ExtractionOutcome struct {
	Attempted bool
	Succeeded bool
	Err       error
}
