package service

import (
	"context"
	"errors"

	"trackfit/workout-app/internal/builder"
	"trackfit/workout-app/internal/domain"
	"trackfit/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrFolderNotFound   = errors.New("folder not found")
	ErrValidationFailed = errors.New("validation failed")
)

// WorkoutService is the single gateway between editing sessions, the
// API surface and the workout/folder store. Store failures are not
// swallowed anywhere: every operation reports its outcome so the caller
// can surface it.
type WorkoutService interface {
	// SaveSession persists a builder session: update when the session
	// was hydrated from an existing workout, insert otherwise. The
	// session state is untouched on failure so the save can be retried.
	SaveSession(ctx context.Context, uid string, b *builder.Builder) (primitive.ObjectID, error)
	FetchWorkouts(ctx context.Context, uid string) ([]domain.Workout, error)
	FetchWorkoutByID(ctx context.Context, uid, workoutID string) (*domain.Workout, error)
	// DeleteWorkout removes the workout document only; folder snapshots
	// referencing it stay behind. Use DeleteWorkoutInFolder when the
	// workout is known to live in a folder.
	DeleteWorkout(ctx context.Context, workoutID string) error
	// DeleteWorkoutInFolder removes the folder's snapshot first and only
	// then deletes the workout document, so a failure between the two
	// steps never leaves a folder entry pointing at a deleted workout.
	DeleteWorkoutInFolder(ctx context.Context, folderID, workoutID string) error

	CreateFolder(ctx context.Context, uid, folderName string) (primitive.ObjectID, error)
	FetchFolders(ctx context.Context, uid string) ([]domain.FolderRef, error)
	// AddWorkoutToFolder snapshots the workout (ownership-checked) and
	// appends it to the folder's embedded list.
	AddWorkoutToFolder(ctx context.Context, uid, folderID, workoutID string) error
	FetchFolderWorkouts(ctx context.Context, folderID string) ([]domain.WorkoutSnapshot, error)
	ReorderFolderWorkouts(ctx context.Context, folderID string, ordered []domain.WorkoutSnapshot) error
	RemoveWorkoutFromFolder(ctx context.Context, folderID, workoutID string) error
	DeleteFolder(ctx context.Context, folderID string) error
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	folderRepo  repository.FolderRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, folderRepo repository.FolderRepository) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		folderRepo:  folderRepo,
	}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrValidationFailed
	}
	return oid, nil
}

// SaveSession persists a builder session through the repository.
func (s *workoutService) SaveSession(ctx context.Context, uid string, b *builder.Builder) (primitive.ObjectID, error) {
	if uid == "" {
		return primitive.NilObjectID, ErrValidationFailed
	}

	payload := b.BuildPayload()
	if b.EditMode() {
		workoutID, err := parseObjectID(b.WorkoutID())
		if err != nil {
			return primitive.NilObjectID, err
		}
		if err := s.workoutRepo.Update(ctx, uid, workoutID, payload.Name, payload.Exercises, payload.Supersets, payload.SupersetColors); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return primitive.NilObjectID, ErrWorkoutNotFound
			}
			return primitive.NilObjectID, err
		}
		return workoutID, nil
	}

	return s.workoutRepo.Save(ctx, uid, payload.Name, payload.Exercises, payload.Supersets, payload.SupersetColors)
}

// FetchWorkouts lists the user's workouts, newest first.
func (s *workoutService) FetchWorkouts(ctx context.Context, uid string) ([]domain.Workout, error) {
	if uid == "" {
		return nil, ErrValidationFailed
	}
	return s.workoutRepo.FetchByUID(ctx, uid)
}

// FetchWorkoutByID returns the workout only when it belongs to uid.
func (s *workoutService) FetchWorkoutByID(ctx context.Context, uid, workoutID string) (*domain.Workout, error) {
	oid, err := parseObjectID(workoutID)
	if err != nil {
		return nil, err
	}
	workout, err := s.workoutRepo.FetchByID(ctx, uid, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// DeleteWorkout removes the workout document by id.
func (s *workoutService) DeleteWorkout(ctx context.Context, workoutID string) error {
	oid, err := parseObjectID(workoutID)
	if err != nil {
		return err
	}
	if err := s.workoutRepo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

// DeleteWorkoutInFolder removes the snapshot, then the document.
func (s *workoutService) DeleteWorkoutInFolder(ctx context.Context, folderID, workoutID string) error {
	if err := s.RemoveWorkoutFromFolder(ctx, folderID, workoutID); err != nil {
		return err
	}
	return s.DeleteWorkout(ctx, workoutID)
}

// CreateFolder creates an empty folder for the user.
func (s *workoutService) CreateFolder(ctx context.Context, uid, folderName string) (primitive.ObjectID, error) {
	if uid == "" || folderName == "" {
		return primitive.NilObjectID, ErrValidationFailed
	}
	return s.folderRepo.Create(ctx, uid, folderName)
}

// FetchFolders lists the user's folders.
func (s *workoutService) FetchFolders(ctx context.Context, uid string) ([]domain.FolderRef, error) {
	if uid == "" {
		return nil, ErrValidationFailed
	}
	return s.folderRepo.FetchByUID(ctx, uid)
}

// AddWorkoutToFolder fetches the workout with the owner filter applied
// and appends its snapshot to the folder.
func (s *workoutService) AddWorkoutToFolder(ctx context.Context, uid, folderID, workoutID string) error {
	workout, err := s.FetchWorkoutByID(ctx, uid, workoutID)
	if err != nil {
		return err
	}

	folderOID, err := parseObjectID(folderID)
	if err != nil {
		return err
	}
	if err := s.folderRepo.AddWorkout(ctx, folderOID, domain.SnapshotOf(*workout)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFolderNotFound
		}
		return err
	}
	return nil
}

// FetchFolderWorkouts returns the folder's embedded snapshots, empty
// when the folder is missing.
func (s *workoutService) FetchFolderWorkouts(ctx context.Context, folderID string) ([]domain.WorkoutSnapshot, error) {
	oid, err := parseObjectID(folderID)
	if err != nil {
		return nil, err
	}
	return s.folderRepo.FetchWorkouts(ctx, oid)
}

// ReorderFolderWorkouts overwrites the folder's embedded list with the
// caller-supplied order.
func (s *workoutService) ReorderFolderWorkouts(ctx context.Context, folderID string, ordered []domain.WorkoutSnapshot) error {
	oid, err := parseObjectID(folderID)
	if err != nil {
		return err
	}
	if err := s.folderRepo.ReorderWorkouts(ctx, oid, ordered); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFolderNotFound
		}
		return err
	}
	return nil
}

// RemoveWorkoutFromFolder drops the matching snapshot from the folder.
func (s *workoutService) RemoveWorkoutFromFolder(ctx context.Context, folderID, workoutID string) error {
	oid, err := parseObjectID(folderID)
	if err != nil {
		return err
	}
	if err := s.folderRepo.RemoveWorkout(ctx, oid, workoutID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFolderNotFound
		}
		return err
	}
	return nil
}

// DeleteFolder removes the folder document, snapshots included.
func (s *workoutService) DeleteFolder(ctx context.Context, folderID string) error {
	oid, err := parseObjectID(folderID)
	if err != nil {
		return err
	}
	if err := s.folderRepo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFolderNotFound
		}
		return err
	}
	return nil
}
