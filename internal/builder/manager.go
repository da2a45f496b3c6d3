package builder

import (
	"errors"
	"sync"

	"trackfit/workout-app/internal/domain"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session id does not resolve to
// a live editing session.
var ErrSessionNotFound = errors.New("builder session not found")

// Manager owns the live editing sessions of one process, keyed by a
// generated session id. Each session belongs to a single user flow, so
// the manager only serializes map access plus the invoked transition;
// there is no cross-session coordination.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Builder
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: map[string]*Builder{}}
}

// Open starts a create-mode session seeded with the given catalog
// selection and returns its id.
func (m *Manager) Open(selected []domain.CatalogExercise) string {
	b := New()
	b.MergeExercises(selected)
	return m.put(b)
}

// OpenEdit starts an edit-mode session hydrated from a stored workout.
func (m *Manager) OpenEdit(w *domain.Workout) string {
	return m.put(Hydrate(w))
}

func (m *Manager) put(b *Builder) string {
	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = b
	m.mu.Unlock()
	return id
}

// Do runs fn against the named session while holding the manager lock.
// The session stays alive afterwards regardless of fn's outcome, so a
// failed save can be retried.
func (m *Manager) Do(sessionID string, fn func(*Builder) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	return fn(b)
}

// Close drops the session; called after a successful save or an
// explicit discard.
func (m *Manager) Close(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}
