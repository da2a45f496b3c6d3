package service

import (
	"sync"

	"trackfit/workout-app/internal/domain"
)

// SessionManager holds the process's current-user state as an explicit
// object rather than package globals. Observers register a callback and
// get the new user (or nil on sign-out) whenever the session changes.
type SessionManager struct {
	mu      sync.Mutex
	current *domain.User
	subs    map[int]func(*domain.User)
	nextSub int
}

// NewSessionManager creates a session manager with no current user.
func NewSessionManager() *SessionManager {
	return &SessionManager{subs: map[int]func(*domain.User){}}
}

// CurrentUser returns the signed-in user, nil when nobody is signed in.
func (m *SessionManager) CurrentUser() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Subscribe registers a callback invoked on every session change and
// returns its teardown. The teardown is meant to be called exactly
// once; there is no double-unsubscribe protection.
func (m *SessionManager) Subscribe(fn func(*domain.User)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// setUser swaps the current user and notifies every subscriber.
// Callbacks run outside the lock so a subscriber may re-read the
// session or unsubscribe itself.
func (m *SessionManager) setUser(user *domain.User) {
	m.mu.Lock()
	m.current = user
	notify := make([]func(*domain.User), 0, len(m.subs))
	for _, fn := range m.subs {
		notify = append(notify, fn)
	}
	m.mu.Unlock()

	for _, fn := range notify {
		fn(user)
	}
}
