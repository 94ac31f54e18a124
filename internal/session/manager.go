package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager creates sessions and serializes every mutation of a session
// behind a per-id lock. Different sessions proceed in parallel.
type Manager struct {
	store Store
	locks *keyedMutex
	now   func() time.Time
}

// NewManager creates a Manager over store.
func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		locks: newKeyedMutex(),
		now:   time.Now,
	}
}

// Create starts a new empty session.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	s := New(uuid.NewString(), m.now())
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns a copy of the session. Changes to it are not persisted.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	return m.store.Get(ctx, id)
}

// Update loads the session, applies fn and saves the result while holding
// the session's lock. When fn fails nothing is saved. fn may block (for
// example on a model call); other requests for the same session wait.
func (m *Manager) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	unlock := m.locks.Lock(id)
	defer unlock()

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	s.UpdatedAt = m.now()
	// Work done by fn is kept even if the client has gone away.
	if err := m.store.Save(context.WithoutCancel(ctx), s); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete tears the session down.
func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock := m.locks.Lock(id)
	defer unlock()
	return m.store.Delete(ctx, id)
}

// Now returns the manager's clock reading.
func (m *Manager) Now() time.Time {
	return m.now()
}

// keyedMutex hands out one mutex per key and forgets it once unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

func (k *keyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
