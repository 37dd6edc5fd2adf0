package domain

import (
	"fmt"
	"time"
)

// ProposalSession is one proposal-intake conversation and its accumulated field values.
type ProposalSession struct {
	ID             string
	Title          string
	Status         SessionStatus
	Progress       int // 0-100, advisory only
	Fields         ProposalFields
	LatestDocument *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewProposalSession returns a session in its initial state: active, no
// progress, every proposal field empty.
func NewProposalSession(id string, now time.Time) *ProposalSession {
	return &ProposalSession{
		ID:        id,
		Status:    SessionActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyExtraction overwrites all proposal fields with the extracted values.
// Nothing from the previous field set survives. The title is filled from the
// project title when it has not been set yet. Progress becomes the share of
// non-empty fields.
func (s *ProposalSession) ApplyExtraction(fields ProposalFields, now time.Time) {
	s.Fields = fields
	if s.Title == "" {
		s.Title = fields.ProjectTitle
	}
	s.Progress = fields.Completion()
	s.UpdatedAt = now
}

// HasDocument reports whether a proposal has been rendered for this session.
func (s *ProposalSession) HasDocument() bool {
	return s.LatestDocument != nil && *s.LatestDocument != ""
}

// DisplayID returns the first eight characters of the session ID.
func (s *ProposalSession) DisplayID() string {
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}

// ParseSessionStatus validates a status string.
func ParseSessionStatus(v string) (SessionStatus, error) {
	switch st := SessionStatus(v); st {
	case SessionActive, SessionInactive, SessionArchived:
		return st, nil
	default:
		return "", fmt.Errorf("unknown session status %q (want active, inactive or archived)", v)
	}
}
