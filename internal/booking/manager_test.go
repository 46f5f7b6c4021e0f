package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager(&fakeStore{}, newFakeNotifier(), time.Hour)

	sess := m.Create()
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, 1, m.Count())

	got, ok := m.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	_, ok = m.Get("no-such-session")
	assert.False(t, ok)
}

func TestManagerSessionIDsAreUnique(t *testing.T) {
	m := NewManager(&fakeStore{}, newFakeNotifier(), time.Hour)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sess := m.Create()
		require.False(t, seen[sess.ID])
		seen[sess.ID] = true
	}
}

func TestManagerPurgeExpired(t *testing.T) {
	m := NewManager(&fakeStore{}, newFakeNotifier(), 30*time.Minute)
	current := date("2024-06-01")
	m.now = func() time.Time { return current }

	stale := m.Create()
	current = current.Add(20 * time.Minute)
	fresh := m.Create()

	// Touching a session keeps it alive past the TTL.
	current = current.Add(15 * time.Minute)
	_, ok := m.Get(fresh.ID)
	require.True(t, ok)

	current = current.Add(10 * time.Minute)
	removed := m.PurgeExpired()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, m.Count())

	_, ok = m.Get(stale.ID)
	assert.False(t, ok)
	_, ok = m.Get(fresh.ID)
	assert.True(t, ok)
}
