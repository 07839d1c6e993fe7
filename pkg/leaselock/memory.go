package leaselock

import (
	"context"
	"sync"
	"time"
)

type memoryLease struct {
	token     string
	expiresAt time.Time
}

// MemoryBackend keeps leases in process memory. It serializes goroutines
// of one process, for example several consumers of the same worker.
type MemoryBackend struct {
	mu     sync.Mutex
	leases map[string]memoryLease
	now    func() time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		leases: make(map[string]memoryLease),
		now:    time.Now,
	}
}

func (m *MemoryBackend) TryAcquire(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if current, ok := m.leases[key]; ok && current.token != token && now.Before(current.expiresAt) {
		return false, nil
	}
	m.leases[key] = memoryLease{token: token, expiresAt: now.Add(ttl)}
	return true, nil
}

func (m *MemoryBackend) Renew(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.leases[key]
	if !ok || current.token != token {
		return false, nil
	}
	m.leases[key] = memoryLease{token: token, expiresAt: m.now().Add(ttl)}
	return true, nil
}

func (m *MemoryBackend) Release(ctx context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.leases[key]; ok && current.token == token {
		delete(m.leases, key)
	}
	return nil
}
