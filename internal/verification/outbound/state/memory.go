package state

import (
	"context"
	"sync"

	"github.com/scanme/authflow/internal/verification/entity"
)

// Memory is an in-process Store. State is lost when the process exits.
type Memory struct {
	mu      sync.RWMutex
	session entity.Session
	tokens  map[entity.Purpose]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{tokens: make(map[entity.Purpose]string)}
}

func (m *Memory) Establish(_ context.Context, s entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = s
	return nil
}

func (m *Memory) Load(_ context.Context) (entity.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.session, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = entity.Session{}
	return nil
}

func (m *Memory) StashVerificationToken(_ context.Context, p entity.Purpose, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[p] = token
	return nil
}

func (m *Memory) VerificationToken(_ context.Context, p entity.Purpose) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.tokens[p], nil
}

func (m *Memory) ClearVerificationToken(_ context.Context, p entity.Purpose) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, p)
	return nil
}
