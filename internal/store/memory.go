package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/crmimport/internal/core"
)

// Memory keeps contacts in process memory. Contents are lost on exit.
type Memory struct {
	mu       sync.Mutex
	contacts []core.Contact
	calls    int
	now      func() time.Time
	failOn   func(call int, batch []core.CandidateContact) error
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithClock sets the creation timestamp source.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// WithFailure makes CreateMany return the error fn reports for a call.
// call is 1-based. A nil error lets the call through.
func WithFailure(fn func(call int, batch []core.CandidateContact) error) MemoryOption {
	return func(m *Memory) { m.failOn = fn }
}

// NewMemory returns an empty in-memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateMany assigns ids and timestamps and stores the batch atomically.
func (m *Memory) CreateMany(ctx context.Context, contacts []core.CandidateContact) ([]core.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.failOn != nil {
		if err := m.failOn(m.calls, contacts); err != nil {
			return nil, err
		}
	}

	created := make([]core.Contact, len(contacts))
	now := m.now().UTC()
	for i, c := range contacts {
		c.Sources = append([]string(nil), c.Sources...)
		c.Tags = append([]string{}, c.Tags...)
		created[i] = core.Contact{ID: uuid.NewString(), CandidateContact: c, CreatedAt: now}
	}
	m.contacts = append(m.contacts, created...)

	return append([]core.Contact(nil), created...), nil
}

// List returns a copy of every stored contact in creation order.
func (m *Memory) List(ctx context.Context) ([]core.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Contact(nil), m.contacts...), nil
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error {
	return nil
}

// Close is a no-op.
func (m *Memory) Close() {}
