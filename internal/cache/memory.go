package cache

import (
	"context"
	"sync"
)

// Memory implements DocumentCache with an in-process map. It has no expiry
// and is meant for tests and single-process runs.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemory creates an empty in-memory document cache.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]Document)}
}

func (m *Memory) Get(_ context.Context, sessionID string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[sessionID]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (m *Memory) Set(_ context.Context, doc *Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.SessionID] = *doc
	return nil
}

func (m *Memory) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, sessionID)
	return nil
}
