package repository

import (
	"context"

	"trackfit/workout-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrValidation   = RepositoryError("validation failed")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// CredentialRepository is the identity side of sign-up/sign-in: opaque
// user ids bound to an email and password hash. Profiles live apart in
// the users collection, so a created identity survives a failed profile
// write.
type CredentialRepository interface {
	// Create registers a new identity and returns its opaque uid.
	Create(ctx context.Context, email, passwordHash string) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.Credential, error)
}

// UserRepository manages profile documents in the users collection,
// keyed by the identity's uid.
type UserRepository interface {
	// CreateProfile inserts the profile document for an existing
	// identity; user.UID must be set.
	CreateProfile(ctx context.Context, user *domain.User) error
	GetByUID(ctx context.Context, uid string) (*domain.User, error)
	// ProfileExists reports whether a profile document exists for uid.
	// A missing document is not an error.
	ProfileExists(ctx context.Context, uid string) (bool, error)
	// EnsureProfile creates the profile document only if none exists for
	// the user's uid (federated sign-in path).
	EnsureProfile(ctx context.Context, user *domain.User) error
}

// WorkoutRepository manages workout documents in the user_workouts
// collection. Every read reconstructs documents defensively: optional
// fields missing from older schema versions get their documented
// defaults.
type WorkoutRepository interface {
	// Save appends a new workout document with a server-assigned
	// creation timestamp and returns its id.
	Save(ctx context.Context, uid, name string, exercises []domain.WorkoutExercise, supersets, supersetColors map[string]string) (primitive.ObjectID, error)
	// FetchByUID returns all workouts owned by uid, newest first.
	FetchByUID(ctx context.Context, uid string) ([]domain.Workout, error)
	// FetchByID returns the workout only when it belongs to uid; the id
	// alone is not sufficient authorization.
	FetchByID(ctx context.Context, uid string, workoutID primitive.ObjectID) (*domain.Workout, error)
	// Update overwrites the name, exercise list and superset maps
	// wholesale and stamps updatedAt.
	Update(ctx context.Context, uid string, workoutID primitive.ObjectID, name string, exercises []domain.WorkoutExercise, supersets, supersetColors map[string]string) error
	// Delete removes the document by id. Ownership is the caller's
	// responsibility, as is removing folder references beforehand.
	Delete(ctx context.Context, workoutID primitive.ObjectID) error
}

// FolderRepository manages folder documents in the user_workout_folders
// collection. The embedded workout list is mutated via read-modify-write
// with no concurrency token: concurrent writers are last-write-wins.
type FolderRepository interface {
	Create(ctx context.Context, uid, folderName string) (primitive.ObjectID, error)
	FetchByUID(ctx context.Context, uid string) ([]domain.FolderRef, error)
	// AddWorkout appends a snapshot to the folder's embedded list.
	// Returns ErrNotFound when the folder does not exist.
	AddWorkout(ctx context.Context, folderID primitive.ObjectID, snapshot domain.WorkoutSnapshot) error
	// FetchWorkouts returns the embedded snapshot list, empty when the
	// folder is missing.
	FetchWorkouts(ctx context.Context, folderID primitive.ObjectID) ([]domain.WorkoutSnapshot, error)
	// ReorderWorkouts overwrites the embedded list with the caller's
	// order; no ordering logic happens here.
	ReorderWorkouts(ctx context.Context, folderID primitive.ObjectID, ordered []domain.WorkoutSnapshot) error
	// RemoveWorkout filters the embedded list by snapshot id and writes
	// it back, leaving the remaining entries and their order intact.
	RemoveWorkout(ctx context.Context, folderID primitive.ObjectID, workoutID string) error
	Delete(ctx context.Context, folderID primitive.ObjectID) error
}
