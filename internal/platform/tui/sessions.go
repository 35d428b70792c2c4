package tui

import (
	"sort"
	"sync"
	"time"
)

// ActiveSession describes one board hosted by the SSH server.
type ActiveSession struct {
	ID      string
	User    string
	Started time.Time
}

// sessionRegistry tracks boards hosted by the SSH server.
// Thread-safe for concurrent access.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]ActiveSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]ActiveSession),
	}
}

// register adds a session and returns the number of active sessions.
func (r *sessionRegistry) register(s ActiveSession) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return len(r.sessions)
}

// unregister removes a session and returns the number still active.
func (r *sessionRegistry) unregister(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return len(r.sessions)
}

// list returns active sessions, oldest first.
func (r *sessionRegistry) list() []ActiveSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ActiveSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Started.Before(out[j].Started)
	})
	return out
}
