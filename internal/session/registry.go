package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/coder/quartz"

	"github.com/lox/pokerroom/internal/gameid"
)

// ErrSessionNotFound is returned for unknown session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Registry maps session IDs to sessions. The registry lock guards only the
// map; each session carries its own mutex, so operations on different
// tables proceed independently.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	clock    quartz.Clock
}

// NewRegistry creates an empty registry. A nil clock means real time.
func NewRegistry(clock quartz.Clock) *Registry {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		clock:    clock,
	}
}

// Create validates the configuration and registers a new session under an
// unguessable ID.
func (r *Registry) Create(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	s := New(gameid.New(), cfg, r.clock)

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	return s, nil
}

// Get looks up a session by ID.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	return s, nil
}

// Delete removes a session. Held references stay usable; the ID simply no
// longer resolves.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Snapshot returns the redacted view of a session for one viewer.
func (r *Registry) Snapshot(sessionID, viewerID string) (Snapshot, error) {
	s, err := r.Get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return s.Snapshot(viewerID), nil
}
