package service

import (
	"testing"

	"trackfit/workout-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManagerNotifiesSubscribers(t *testing.T) {
	m := NewSessionManager()
	require.Nil(t, m.CurrentUser())

	var seen []*domain.User
	unsubscribe := m.Subscribe(func(u *domain.User) {
		seen = append(seen, u)
	})

	alice := &domain.User{UID: "uid-1", Username: "alice"}
	m.setUser(alice)
	assert.Equal(t, alice, m.CurrentUser())

	m.setUser(nil)
	assert.Nil(t, m.CurrentUser())

	require.Len(t, seen, 2)
	assert.Equal(t, alice, seen[0])
	assert.Nil(t, seen[1])

	unsubscribe()
	m.setUser(alice)
	assert.Len(t, seen, 2)
}

func TestSessionManagerSubscriberMayUnsubscribeItself(t *testing.T) {
	m := NewSessionManager()

	calls := 0
	var unsubscribe func()
	unsubscribe = m.Subscribe(func(*domain.User) {
		calls++
		unsubscribe()
	})

	m.setUser(&domain.User{UID: "uid-1"})
	m.setUser(nil)
	assert.Equal(t, 1, calls)
}
