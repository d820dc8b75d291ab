package game

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cardhouse/blackjackd/engine"
)

// Registry tracks live sessions by ID. Sessions are created on first
// attach and reaped after sitting idle with no subscribers.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	rules       engine.Rules
	betUnit     int
	idleTimeout time.Duration
}

// NewRegistry creates an empty registry; every session it creates shares
// the given rules and autopilot bet unit.
func NewRegistry(rules engine.Rules, betUnit int, idleTimeout time.Duration) *Registry {
	return &Registry{
		sessions:    make(map[string]*Session),
		rules:       rules,
		betUnit:     betUnit,
		idleTimeout: idleTimeout,
	}
}

// GetOrCreate returns the session with the given ID, creating it if absent.
func (r *Registry) GetOrCreate(id string) *Session {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s
	}
	s = NewSession(id, r.rules, r.betUnit, nil)
	r.sessions[id] = s
	logrus.WithField("session_id", id).Info("session created")
	return s
}

// Get returns the session with the given ID, if present.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove drops a session from the registry.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// RunJanitor sweeps idle subscriber-less sessions once a minute until the
// context is canceled.
func (r *Registry) RunJanitor(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *Registry) sweep() {
	cutoff := time.Now().Add(-r.idleTimeout)

	r.mu.Lock()
	var expired []string
	for id, s := range r.sessions {
		if s.SubscriberCount() == 0 && s.LastActive().Before(cutoff) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, id := range expired {
		logrus.WithField("session_id", id).Info("reaped idle session")
	}
}
