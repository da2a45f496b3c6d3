package mongo

import (
	"testing"
	"time"

	"trackfit/workout-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDecodeSetDefaults(t *testing.T) {
	set := decodeSet(bson.M{})
	assert.Equal(t, "0", set.KG)
	assert.Equal(t, "0", set.Reps)
	assert.Equal(t, "", set.RepDisplay)
	assert.Equal(t, domain.WeightUnitKG, set.WeightUnit)
	assert.Equal(t, domain.RepTypeReps, set.RepType)

	// present fields survive; wrong-typed ones fall back
	set = decodeSet(bson.M{"kg": "80", "reps": int32(8), "repDisplay": "FAILURE"})
	assert.Equal(t, "80", set.KG)
	assert.Equal(t, "0", set.Reps)
	assert.Equal(t, "FAILURE", set.RepDisplay)
}

func TestDecodeExerciseDefaults(t *testing.T) {
	ex := decodeExercise(bson.M{"id": "0001"})
	assert.Equal(t, "0001", ex.ID)
	assert.Equal(t, "Unknown Exercise", ex.Name)
	assert.Equal(t, "", ex.GifURL)
	assert.NotNil(t, ex.Sets)
	assert.Empty(t, ex.Sets)

	ex = decodeExercise(bson.M{
		"id":   "0002",
		"name": "Lat Pulldown",
		"sets": primitive.A{bson.M{"kg": "55", "reps": "12"}},
	})
	require.Len(t, ex.Sets, 1)
	assert.Equal(t, "55", ex.Sets[0].KG)
	assert.Equal(t, "12", ex.Sets[0].Reps)
}

func TestDecodeWorkoutDefaults(t *testing.T) {
	id := primitive.NewObjectID()
	w := decodeWorkout(id, bson.M{"uid": "user-1"})

	assert.Equal(t, id, w.ID)
	assert.Equal(t, "user-1", w.UID)
	assert.Equal(t, domain.DefaultWorkoutName, w.Name)
	assert.NotNil(t, w.Exercises)
	assert.NotNil(t, w.Supersets)
	assert.NotNil(t, w.SupersetColors)
	assert.True(t, w.CreatedAt.IsZero())
}

func TestDecodeWorkoutFullDocument(t *testing.T) {
	id := primitive.NewObjectID()
	created := primitive.NewDateTimeFromTime(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	w := decodeWorkout(id, bson.M{
		"uid":         "user-1",
		"workoutName": "Pull Day",
		"exercises": primitive.A{
			bson.M{"id": "a", "name": "Row", "sets": primitive.A{bson.M{"kg": "60", "reps": "10"}}},
			bson.M{"id": "b"},
		},
		"supersets":      bson.M{"a": "b", "b": "a"},
		"supersetColors": bson.M{"a": "#ff6384", "b": "#ff6384"},
		"createdAt":      created,
	})

	assert.Equal(t, "Pull Day", w.Name)
	require.Len(t, w.Exercises, 2)
	assert.Equal(t, "Row", w.Exercises[0].Name)
	assert.Equal(t, "Unknown Exercise", w.Exercises[1].Name)
	assert.Equal(t, map[string]string{"a": "b", "b": "a"}, w.Supersets)
	assert.Equal(t, created.Time().UTC(), w.CreatedAt)
}

func TestDecodeSnapshotDefaults(t *testing.T) {
	s := decodeSnapshot(bson.M{"id": "w-1"})
	assert.Equal(t, "w-1", s.WorkoutID)
	assert.Equal(t, domain.DefaultWorkoutName, s.Name)
	assert.NotNil(t, s.Exercises)
	assert.NotNil(t, s.Supersets)
}
