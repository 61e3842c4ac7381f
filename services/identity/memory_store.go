package identity

import (
	"context"
	"sync"
	"time"
)

// MemoryTokenStore is a process local TokenStore, used when no Redis is
// configured and in tests.
type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	email   string
	expires time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryTokenStore) SaveResetToken(_ context.Context, tokenHash, email string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, key)
		}
	}
	s.entries[tokenHash] = memoryEntry{email: email, expires: now.Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) TakeResetToken(_ context.Context, tokenHash string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[tokenHash]
	if !ok {
		return "", false, nil
	}
	delete(s.entries, tokenHash)
	if !s.now().Before(e.expires) {
		return "", false, nil
	}
	return e.email, true, nil
}
