package history

import (
	"context"
	"sync"

	"github.com/nusfitness/fitness-bot/internal/token"
)

// MemoryStore is an in-process history store for tests and local runs
// without a backend or database.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[int64][]string
}

// NewMemoryStore creates an empty in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[int64][]string)}
}

// Record appends the token as the chat's current menu.
func (s *MemoryStore) Record(_ context.Context, chatID int64, tok string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[chatID] = append(s.entries[chatID], tok)
	return nil
}

// Resolve returns the token skip positions back from the most recent entry,
// or the Start anchor once history is exhausted.
func (s *MemoryStore) Resolve(_ context.Context, chatID int64, skip int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.entries[chatID]
	idx := len(seq) - 1 - skip
	if idx < 0 {
		return token.Start, nil
	}
	return seq[idx], nil
}
