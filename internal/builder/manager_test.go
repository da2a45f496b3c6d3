package builder

import (
	"errors"
	"sync"
	"testing"

	"trackfit/workout-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestManagerOpenAndClose(t *testing.T) {
	m := NewManager()

	id := m.Open([]domain.CatalogExercise{{ID: "0001", Name: "Bench Press"}})
	require.NotEmpty(t, id)

	err := m.Do(id, func(b *Builder) error {
		assert.False(t, b.EditMode())
		assert.Len(t, b.Exercises(), 1)
		return nil
	})
	require.NoError(t, err)

	m.Close(id)
	err = m.Do(id, func(*Builder) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// closing twice is harmless
	m.Close(id)
}

func TestManagerOpenEditHydrates(t *testing.T) {
	m := NewManager()
	stored := &domain.Workout{
		ID:   primitive.NewObjectID(),
		Name: "Pull Day",
		Exercises: []domain.WorkoutExercise{
			{ID: "a", Name: "Row", Sets: []domain.Set{{KG: "60", Reps: "10"}}},
		},
	}

	id := m.OpenEdit(stored)
	err := m.Do(id, func(b *Builder) error {
		assert.True(t, b.EditMode())
		assert.Equal(t, stored.ID.Hex(), b.WorkoutID())
		assert.Equal(t, "Pull Day", b.Name())
		return nil
	})
	require.NoError(t, err)
}

func TestManagerDoPropagatesErrors(t *testing.T) {
	m := NewManager()
	id := m.Open(nil)

	boom := errors.New("boom")
	err := m.Do(id, func(*Builder) error { return boom })
	assert.ErrorIs(t, err, boom)

	// the session survives a failed operation
	assert.NoError(t, m.Do(id, func(*Builder) error { return nil }))
}

func TestManagerSerializesAccess(t *testing.T) {
	m := NewManager()
	id := m.Open([]domain.CatalogExercise{{ID: "0001", Name: "Bench Press"}})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Do(id, func(b *Builder) error {
				return b.AddSet("0001")
			})
		}()
	}
	wg.Wait()

	err := m.Do(id, func(b *Builder) error {
		assert.Len(t, b.Exercises()[0].Sets, 51)
		return nil
	})
	require.NoError(t, err)
}
