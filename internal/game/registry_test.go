package game

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardhouse/blackjackd/engine"
)

func newTestRegistry(idle time.Duration) *Registry {
	return NewRegistry(engine.DefaultRules(), 25, idle)
}

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	r := newTestRegistry(time.Hour)

	a := r.GetOrCreate("s1")
	b := r.GetOrCreate("s1")

	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.Equal(t, 1, r.Len())
}

func TestGetOrCreateConcurrent(t *testing.T) {
	r := newTestRegistry(time.Hour)

	const workers = 16
	sessions := make([]*Session, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i] = r.GetOrCreate("shared")
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, sessions[0], sessions[i])
	}
	assert.Equal(t, 1, r.Len())
}

func TestRemove(t *testing.T) {
	r := newTestRegistry(time.Hour)
	r.GetOrCreate("s1")

	r.Remove("s1")

	_, ok := r.Get("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestSweepReapsIdleSessions(t *testing.T) {
	r := newTestRegistry(time.Minute)
	for i := 0; i < 3; i++ {
		s := r.GetOrCreate(fmt.Sprintf("idle-%d", i))
		s.mu.Lock()
		s.lastActive = time.Now().Add(-time.Hour)
		s.mu.Unlock()
	}

	r.sweep()

	assert.Equal(t, 0, r.Len())
}

func TestSweepKeepsSubscribedSessions(t *testing.T) {
	r := newTestRegistry(time.Minute)
	s := r.GetOrCreate("attached")
	s.mu.Lock()
	s.lastActive = time.Now().Add(-time.Hour)
	s.mu.Unlock()
	id, _ := s.Subscribe()
	defer s.Unsubscribe(id)

	r.sweep()

	_, ok := r.Get("attached")
	assert.True(t, ok, "sessions with live subscribers are never reaped")
}

func TestSweepKeepsRecentlyActiveSessions(t *testing.T) {
	r := newTestRegistry(time.Minute)
	r.GetOrCreate("fresh")

	r.sweep()

	_, ok := r.Get("fresh")
	assert.True(t, ok)
}
