// Package cache holds the latest rendered proposal document outside SQLite
// so repeated reads skip the database.
package cache

import (
	"context"
	"time"
)

// Document is a cached rendering of a session's latest proposal.
type Document struct {
	SessionID  string    `json:"session_id"`
	Text       string    `json:"text"`
	RenderedAt time.Time `json:"rendered_at"`
}

// DocumentCache stores the latest rendered document per session.
// Get returns (nil, nil) on a miss.
type DocumentCache interface {
	Get(ctx context.Context, sessionID string) (*Document, error)
	Set(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, sessionID string) error
}

// Noop is a DocumentCache that never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) (*Document, error) { return nil, nil }
func (Noop) Set(context.Context, *Document) error { return nil }
func (Noop) Delete(context.Context, string) error { return nil }
