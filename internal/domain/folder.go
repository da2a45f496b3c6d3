package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSnapshot is a denormalized copy of a workout embedded inside a
// folder document. It is independent of the workout's own document: the
// snapshot keeps the workout id so folder membership can be filtered by
// it, but edits to the original workout do not flow into the snapshot.
type WorkoutSnapshot struct {
	WorkoutID      string            `bson:"id" json:"id"`
	Name           string            `bson:"workoutName" json:"workoutName"`
	Exercises      []WorkoutExercise `bson:"exercises" json:"exercises"`
	Supersets      map[string]string `bson:"supersets" json:"supersets"`
	SupersetColors map[string]string `bson:"supersetColors" json:"supersetColors"`
	CreatedAt      time.Time         `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Folder groups workouts in the user_workout_folders collection.
// Membership is tracked purely by the embedded snapshot list; the order
// of Workouts is the display order and is rewritten wholesale on reorder.
type Folder struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UID       string             `bson:"uid" json:"uid"`
	Name      string             `bson:"folderName" json:"folderName"`
	Workouts  []WorkoutSnapshot  `bson:"workouts" json:"workouts"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// FolderRef is the id/name pair returned by folder listings.
type FolderRef struct {
	ID         string `json:"id"`
	FolderName string `json:"folderName"`
}

// SnapshotOf makes a folder snapshot from a saved workout.
func SnapshotOf(w Workout) WorkoutSnapshot {
	return WorkoutSnapshot{
		WorkoutID:      w.ID.Hex(),
		Name:           w.Name,
		Exercises:      w.Exercises,
		Supersets:      w.Supersets,
		SupersetColors: w.SupersetColors,
		CreatedAt:      w.CreatedAt,
	}
}
