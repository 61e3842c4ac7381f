package auth

import (
	"context"
	"sync"
	"time"

	models "LoveForTennis/models/postgres"
)

// MemoryThrottle is a process local LoginThrottle.
type MemoryThrottle struct {
	mu       sync.Mutex
	failures map[string]failureWindow
	now      func() time.Time
}

type failureWindow struct {
	count   int64
	expires time.Time
}

func NewMemoryThrottle() *MemoryThrottle {
	return &MemoryThrottle{failures: make(map[string]failureWindow), now: time.Now}
}

func (m *MemoryThrottle) LoginFailures(_ context.Context, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.failures[models.NormalizeEmail(email)]
	if !ok || !m.now().Before(w.expires) {
		return 0, nil
	}
	return w.count, nil
}

func (m *MemoryThrottle) RegisterLoginFailure(_ context.Context, email string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for key, w := range m.failures {
		if !now.Before(w.expires) {
			delete(m.failures, key)
		}
	}

	key := models.NormalizeEmail(email)
	w, ok := m.failures[key]
	if !ok {
		w = failureWindow{expires: now.Add(window)}
	}
	w.count++
	m.failures[key] = w
	return w.count, nil
}

func (m *MemoryThrottle) ClearLoginFailures(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.failures, models.NormalizeEmail(email))
	return nil
}
