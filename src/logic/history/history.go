package history

import (
	"context"
	"errors"
	"fenview/src/logic/convert/convfen"
	"sync"
	"time"
)

var ErrClosed = errors.New("history store closed")

// Entry is one validation attempt.
type Entry struct {
	Time    time.Time         `json:"time"`
	FEN     string            `json:"fen"`
	Valid   bool              `json:"valid"`
	Kind    convfen.ErrorKind `json:"kind,omitempty"`
	Message string            `json:"message,omitempty"`
}

type Store interface {
	Push(ctx context.Context, e Entry) error
	// Recent returns up to n entries, newest first. n <= 0 means all.
	Recent(ctx context.Context, n int) ([]Entry, error)
	Close() error
}

// ---- In memory ----

// MemoryStore keeps the last limit entries in a ring.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	full    bool
	closed  bool
}

func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryStore{entries: make([]Entry, limit)}
}

const DefaultLimit = 100

func (m *MemoryStore) Push(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.entries[m.next] = e
	m.next = (m.next + 1) % len(m.entries)
	if m.next == 0 {
		m.full = true
	}
	return nil
}

func (m *MemoryStore) Recent(ctx context.Context, n int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	size := m.next
	if m.full {
		size = len(m.entries)
	}
	if n <= 0 || n > size {
		n = size
	}
	out := make([]Entry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (m.next - i + len(m.entries)) % len(m.entries)
		out = append(out, m.entries[idx])
	}
	return out, nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
