// Package memory provides an in-memory Store for tests and development.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/pan-asia/worker-portal/engagement"
	"github.com/pan-asia/worker-portal/store"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	blobs       map[string][]byte
	events      []engagement.Event
	idempotency map[string]bool
}

func New() *Memory {
	return &Memory{
		blobs:       make(map[string][]byte),
		idempotency: make(map[string]bool),
	}
}

var _ store.Store = (*Memory)(nil)

func (m *Memory) GetBlob(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[key]
	if !ok {
		return nil, store.ErrAbsent
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Memory) PutBlob(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data := make([]byte, len(value))
	copy(data, value)
	m.blobs[key] = data
	return nil
}

// AppendEvent records a point award. Append-only.
func (m *Memory) AppendEvent(_ context.Context, ev engagement.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ev.IdempotencyKey != "" && m.idempotency[ev.IdempotencyKey] {
		return store.ErrDuplicateIdempotencyKey
	}
	m.events = append(m.events, ev)
	if ev.IdempotencyKey != "" {
		m.idempotency[ev.IdempotencyKey] = true
	}
	return nil
}

func (m *Memory) ListEvents(_ context.Context, passportNumber string) ([]engagement.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := strings.ToUpper(strings.TrimSpace(passportNumber))
	var out []engagement.Event
	for _, ev := range m.events {
		if key == "" || ev.PassportNumber == key {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *Memory) CountEvents(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events), nil
}

func (m *Memory) Close() error { return nil }
