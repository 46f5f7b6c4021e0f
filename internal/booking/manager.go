package booking

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager keeps the live booking sessions, keyed by an opaque id handed to
// the client. Sessions that go quiet past the TTL are reclaimed by the
// purge job.
type Manager struct {
	store    Store
	notifier Notifier
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
	lastSeen map[string]time.Time
	now      func() time.Time
}

func NewManager(store Store, notifier Notifier, ttl time.Duration) *Manager {
	return &Manager{
		store:    store,
		notifier: notifier,
		ttl:      ttl,
		sessions: make(map[string]*Session),
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Create starts a fresh session in step 1.
func (m *Manager) Create() *Session {
	sess := NewSession(uuid.NewString(), m.store, m.notifier)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	m.lastSeen[sess.ID] = m.now()
	return sess
}

// Get returns the session for id, refreshing its activity timestamp.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if ok {
		m.lastSeen[id] = m.now()
	}
	return sess, ok
}

// PurgeExpired drops sessions idle for longer than the TTL and reports how
// many were removed.
func (m *Manager) PurgeExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-m.ttl)
	removed := 0
	for id, seen := range m.lastSeen {
		if seen.Before(cutoff) {
			delete(m.sessions, id)
			delete(m.lastSeen, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
