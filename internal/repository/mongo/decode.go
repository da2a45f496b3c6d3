package mongo

import (
	"time"

	"trackfit/workout-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Documents written by older schema versions may lack newer fields, so
// read paths never decode straight into the domain structs. Instead the
// raw field bag is mapped explicitly, with every optional field
// defaulted the same way regardless of which write path produced the
// document.

const (
	defaultExerciseName = "Unknown Exercise"
	defaultSetValue     = "0"
)

func asString(doc bson.M, key, fallback string) string {
	if v, ok := doc[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func asStringMap(doc bson.M, key string) map[string]string {
	out := map[string]string{}
	raw, ok := doc[key].(bson.M)
	if !ok {
		return out
	}
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

func asTime(doc bson.M, key string) time.Time {
	switch v := doc[key].(type) {
	case primitive.DateTime:
		return v.Time().UTC()
	case time.Time:
		return v.UTC()
	}
	return time.Time{}
}

func asDocSlice(doc bson.M, key string) []bson.M {
	raw, ok := doc[key].(primitive.A)
	if !ok {
		return nil
	}
	out := make([]bson.M, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(bson.M); ok {
			out = append(out, m)
		}
	}
	return out
}

func decodeSet(doc bson.M) domain.Set {
	return domain.Set{
		KG:         asString(doc, "kg", defaultSetValue),
		Reps:       asString(doc, "reps", defaultSetValue),
		RepDisplay: asString(doc, "repDisplay", ""),
		WeightUnit: domain.WeightUnit(asString(doc, "weightUnit", string(domain.WeightUnitKG))),
		RepType:    domain.RepType(asString(doc, "repType", string(domain.RepTypeReps))),
	}
}

func decodeExercise(doc bson.M) domain.WorkoutExercise {
	ex := domain.WorkoutExercise{
		ID:     asString(doc, "id", ""),
		Name:   asString(doc, "name", defaultExerciseName),
		GifURL: asString(doc, "gifUrl", ""),
		Sets:   []domain.Set{},
	}
	for _, setDoc := range asDocSlice(doc, "sets") {
		ex.Sets = append(ex.Sets, decodeSet(setDoc))
	}
	return ex
}

func decodeWorkout(id primitive.ObjectID, doc bson.M) domain.Workout {
	w := domain.Workout{
		ID:             id,
		UID:            asString(doc, "uid", ""),
		Name:           asString(doc, "workoutName", domain.DefaultWorkoutName),
		Exercises:      []domain.WorkoutExercise{},
		Supersets:      asStringMap(doc, "supersets"),
		SupersetColors: asStringMap(doc, "supersetColors"),
		CreatedAt:      asTime(doc, "createdAt"),
		UpdatedAt:      asTime(doc, "updatedAt"),
	}
	for _, exDoc := range asDocSlice(doc, "exercises") {
		w.Exercises = append(w.Exercises, decodeExercise(exDoc))
	}
	return w
}

func decodeSnapshot(doc bson.M) domain.WorkoutSnapshot {
	s := domain.WorkoutSnapshot{
		WorkoutID:      asString(doc, "id", ""),
		Name:           asString(doc, "workoutName", domain.DefaultWorkoutName),
		Exercises:      []domain.WorkoutExercise{},
		Supersets:      asStringMap(doc, "supersets"),
		SupersetColors: asStringMap(doc, "supersetColors"),
		CreatedAt:      asTime(doc, "createdAt"),
	}
	for _, exDoc := range asDocSlice(doc, "exercises") {
		s.Exercises = append(s.Exercises, decodeExercise(exDoc))
	}
	return s
}
