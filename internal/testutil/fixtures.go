package testutil

import (
	"time"

	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/google/uuid"
)

// Session options
type SessionOption func(*domain.ProposalSession)

func WithSessionStatus(s domain.SessionStatus) SessionOption {
	return func(p *domain.ProposalSession) {
		p.Status = s
	}
}

func WithFields(f domain.ProposalFields) SessionOption {
	return func(p *domain.ProposalSession) {
		p.Fields = f
	}
}

func WithTitle(title string) SessionOption {
	return func(p *domain.ProposalSession) {
		p.Title = title
	}
}

func WithLatestDocument(doc string) SessionOption {
	return func(p *domain.ProposalSession) {
		p.LatestDocument = &doc
	}
}

func WithCreatedAt(t time.Time) SessionOption {
	return func(p *domain.ProposalSession) {
		p.CreatedAt = t
		p.UpdatedAt = t
	}
}

func NewTestProposalSession(opts ...SessionOption) *domain.ProposalSession {
	s := domain.NewProposalSession(uuid.New().String(), time.Now().UTC())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestChatMessage(sessionID string, role domain.MessageRole, text string) *domain.ChatMessage {
	return &domain.ChatMessage{
		SessionID: sessionID,
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}

// SampleFields returns a fully populated field set, modelled on a typical
// web application proposal.
func SampleFields() domain.ProposalFields {
	exp := "Delivered project management systems for healthcare and education clients"
	budget := "Approximately $150,000 including first-year maintenance"
	return domain.ProposalFields{
		ClientName:         "SRH",
		ProjectTitle:       "SRH Project Deliverables System",
		ProblemStatement:   "No centralized system for tracking project deliverables",
		ProposedSolution:   "A web application that centralizes deliverables with real-time tracking",
		PreviousExperience: &exp,
		Objectives:         "- Centralize deliverables tracking\n- Improve team communication",
		ImplementationPlan: "Phase 1: Requirements\nPhase 2: Development\nPhase 3: Rollout",
		Benefits:           "- Better visibility\n- Less administrative overhead",
		Timeline:           "July 2025 to June 2026",
		Budget:             &budget,
		Deliverables:       "- Web application\n- API documentation\n- Training materials",
		Technologies:       "Go backend, React frontend, PostgreSQL",
	}
}
