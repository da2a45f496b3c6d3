package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultWorkoutName is used whenever a workout is saved without a name.
const DefaultWorkoutName = "Bilinmeyen Antrenman"

// WeightUnit describes how the weight column of a set is interpreted.
type WeightUnit string

const (
	WeightUnitKG  WeightUnit = "KG"  // plain kilograms
	WeightUnitMax WeightUnit = "MAX" // max effort, no fixed weight
	WeightUnitMW  WeightUnit = "MW"  // machine weight, kg column locked
)

// RepType classifies the repetition semantics of a set. A set carries
// either a numeric rep count or a fixed display label, never both.
type RepType string

const (
	RepTypeReps    RepType = "Reps"
	RepTypeFailure RepType = "FL"
	RepTypeDropset RepType = "DS"
)

// Display labels stored in RepDisplay for the non-numeric rep types.
const (
	RepDisplayFailure = "FAILURE"
	RepDisplayDropset = "DROPSET"
)

// Set is a single set of an exercise inside a workout.
// KG is string-typed because "MAX" is a valid sentinel value.
type Set struct {
	KG         string     `bson:"kg" json:"kg"`
	Reps       string     `bson:"reps" json:"reps"`
	RepDisplay string     `bson:"repDisplay" json:"repDisplay"`
	WeightUnit WeightUnit `bson:"weightUnit" json:"weightUnit"`
	RepType    RepType    `bson:"repType" json:"repType"`
}

// WorkoutExercise is an exercise reference plus its ordered set list.
// List position is significant: display order and set numbering derive
// from it.
type WorkoutExercise struct {
	ID     string `bson:"id" json:"id"`
	Name   string `bson:"name" json:"name"`
	GifURL string `bson:"gifUrl" json:"gifUrl"`
	Sets   []Set  `bson:"sets" json:"sets"`
}

// Workout is one saved workout document in the user_workouts collection.
//
// Supersets is a symmetric pairing of exercise ids: Supersets[a] == b
// implies Supersets[b] == a, and both members share the same entry in
// SupersetColors. Colors are persisted as palette color values; the
// builder works with palette indices and converts at the save/load
// boundary.
type Workout struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UID            string             `bson:"uid" json:"uid"`
	Name           string             `bson:"workoutName" json:"workoutName"`
	Exercises      []WorkoutExercise  `bson:"exercises" json:"exercises"`
	Supersets      map[string]string  `bson:"supersets" json:"supersets"`
	SupersetColors map[string]string  `bson:"supersetColors" json:"supersetColors"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
