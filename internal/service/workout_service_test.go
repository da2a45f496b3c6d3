package service

import (
	"context"
	"testing"

	"trackfit/workout-app/internal/builder"
	"trackfit/workout-app/internal/domain"
	"trackfit/workout-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- In-memory fakes ---

type fakeWorkoutRepo struct {
	workouts map[primitive.ObjectID]*domain.Workout
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: map[primitive.ObjectID]*domain.Workout{}}
}

func (r *fakeWorkoutRepo) Save(_ context.Context, uid, name string, exercises []domain.WorkoutExercise, supersets, supersetColors map[string]string) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	r.workouts[id] = &domain.Workout{
		ID: id, UID: uid, Name: name,
		Exercises: exercises, Supersets: supersets, SupersetColors: supersetColors,
	}
	return id, nil
}

func (r *fakeWorkoutRepo) FetchByUID(_ context.Context, uid string) ([]domain.Workout, error) {
	out := []domain.Workout{}
	for _, w := range r.workouts {
		if w.UID == uid {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWorkoutRepo) FetchByID(_ context.Context, uid string, workoutID primitive.ObjectID) (*domain.Workout, error) {
	w, ok := r.workouts[workoutID]
	if !ok || w.UID != uid {
		return nil, repository.ErrNotFound
	}
	copied := *w
	return &copied, nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, uid string, workoutID primitive.ObjectID, name string, exercises []domain.WorkoutExercise, supersets, supersetColors map[string]string) error {
	w, ok := r.workouts[workoutID]
	if !ok || w.UID != uid {
		return repository.ErrNotFound
	}
	w.Name = name
	w.Exercises = exercises
	w.Supersets = supersets
	w.SupersetColors = supersetColors
	return nil
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, workoutID primitive.ObjectID) error {
	if _, ok := r.workouts[workoutID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.workouts, workoutID)
	return nil
}

type fakeFolderRepo struct {
	folders map[primitive.ObjectID]*domain.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: map[primitive.ObjectID]*domain.Folder{}}
}

func (r *fakeFolderRepo) Create(_ context.Context, uid, folderName string) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	r.folders[id] = &domain.Folder{ID: id, UID: uid, Name: folderName, Workouts: []domain.WorkoutSnapshot{}}
	return id, nil
}

func (r *fakeFolderRepo) FetchByUID(_ context.Context, uid string) ([]domain.FolderRef, error) {
	out := []domain.FolderRef{}
	for _, f := range r.folders {
		if f.UID == uid {
			out = append(out, domain.FolderRef{ID: f.ID.Hex(), FolderName: f.Name})
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) AddWorkout(_ context.Context, folderID primitive.ObjectID, snapshot domain.WorkoutSnapshot) error {
	f, ok := r.folders[folderID]
	if !ok {
		return repository.ErrNotFound
	}
	f.Workouts = append(f.Workouts, snapshot)
	return nil
}

func (r *fakeFolderRepo) FetchWorkouts(_ context.Context, folderID primitive.ObjectID) ([]domain.WorkoutSnapshot, error) {
	f, ok := r.folders[folderID]
	if !ok {
		return []domain.WorkoutSnapshot{}, nil
	}
	return f.Workouts, nil
}

func (r *fakeFolderRepo) ReorderWorkouts(_ context.Context, folderID primitive.ObjectID, ordered []domain.WorkoutSnapshot) error {
	f, ok := r.folders[folderID]
	if !ok {
		return repository.ErrNotFound
	}
	f.Workouts = ordered
	return nil
}

func (r *fakeFolderRepo) RemoveWorkout(_ context.Context, folderID primitive.ObjectID, workoutID string) error {
	f, ok := r.folders[folderID]
	if !ok {
		return repository.ErrNotFound
	}
	kept := f.Workouts[:0]
	for _, s := range f.Workouts {
		if s.WorkoutID != workoutID {
			kept = append(kept, s)
		}
	}
	f.Workouts = kept
	return nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, folderID primitive.ObjectID) error {
	if _, ok := r.folders[folderID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.folders, folderID)
	return nil
}

func builderSession(t *testing.T) *builder.Builder {
	t.Helper()
	b := builder.New()
	b.MergeExercises([]domain.CatalogExercise{{ID: "0001", Name: "Bench Press"}})
	require.NoError(t, b.UpdateSet("0001", 0, "kg", "80"))
	b.SetName("Push Day")
	return b
}

// --- Tests ---

func TestSaveSessionInsertsInCreateMode(t *testing.T) {
	workouts := newFakeWorkoutRepo()
	svc := NewWorkoutService(workouts, newFakeFolderRepo())

	b := builderSession(t)
	id, err := svc.SaveSession(context.Background(), "user-1", b)
	require.NoError(t, err)

	saved, err := svc.FetchWorkoutByID(context.Background(), "user-1", id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Push Day", saved.Name)
	require.Len(t, saved.Exercises, 1)
	assert.Equal(t, domain.WeightUnitKG, saved.Exercises[0].Sets[0].WeightUnit)
}

func TestSaveSessionUpdatesInEditMode(t *testing.T) {
	workouts := newFakeWorkoutRepo()
	svc := NewWorkoutService(workouts, newFakeFolderRepo())

	b := builderSession(t)
	id, err := svc.SaveSession(context.Background(), "user-1", b)
	require.NoError(t, err)

	stored, err := svc.FetchWorkoutByID(context.Background(), "user-1", id.Hex())
	require.NoError(t, err)

	edit := builder.Hydrate(stored)
	edit.SetName("Push Day v2")
	savedID, err := svc.SaveSession(context.Background(), "user-1", edit)
	require.NoError(t, err)
	assert.Equal(t, id, savedID)

	updated, err := svc.FetchWorkoutByID(context.Background(), "user-1", id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Push Day v2", updated.Name)
	assert.Len(t, workouts.workouts, 1)
}

func TestFetchWorkoutByIDEnforcesOwnership(t *testing.T) {
	workouts := newFakeWorkoutRepo()
	svc := NewWorkoutService(workouts, newFakeFolderRepo())

	id, err := svc.SaveSession(context.Background(), "user-1", builderSession(t))
	require.NoError(t, err)

	_, err = svc.FetchWorkoutByID(context.Background(), "user-2", id.Hex())
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	_, err = svc.FetchWorkoutByID(context.Background(), "user-1", "not-a-hex-id")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestAddWorkoutToFolderSnapshots(t *testing.T) {
	workouts := newFakeWorkoutRepo()
	folders := newFakeFolderRepo()
	svc := NewWorkoutService(workouts, folders)

	workoutID, err := svc.SaveSession(context.Background(), "user-1", builderSession(t))
	require.NoError(t, err)
	folderID, err := svc.CreateFolder(context.Background(), "user-1", "Strength")
	require.NoError(t, err)

	require.NoError(t, svc.AddWorkoutToFolder(context.Background(), "user-1", folderID.Hex(), workoutID.Hex()))

	snapshots, err := svc.FetchFolderWorkouts(context.Background(), folderID.Hex())
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, workoutID.Hex(), snapshots[0].WorkoutID)
	assert.Equal(t, "Push Day", snapshots[0].Name)

	// another user cannot snapshot someone else's workout
	err = svc.AddWorkoutToFolder(context.Background(), "user-2", folderID.Hex(), workoutID.Hex())
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestDeleteWorkoutInFolderRemovesSnapshotFirst(t *testing.T) {
	workouts := newFakeWorkoutRepo()
	folders := newFakeFolderRepo()
	svc := NewWorkoutService(workouts, folders)

	workoutID, err := svc.SaveSession(context.Background(), "user-1", builderSession(t))
	require.NoError(t, err)
	folderID, err := svc.CreateFolder(context.Background(), "user-1", "Strength")
	require.NoError(t, err)
	require.NoError(t, svc.AddWorkoutToFolder(context.Background(), "user-1", folderID.Hex(), workoutID.Hex()))

	require.NoError(t, svc.DeleteWorkoutInFolder(context.Background(), folderID.Hex(), workoutID.Hex()))

	snapshots, err := svc.FetchFolderWorkouts(context.Background(), folderID.Hex())
	require.NoError(t, err)
	assert.Empty(t, snapshots)
	assert.Empty(t, workouts.workouts)
}

func TestReorderAndRemoveFolderWorkouts(t *testing.T) {
	workouts := newFakeWorkoutRepo()
	folders := newFakeFolderRepo()
	svc := NewWorkoutService(workouts, folders)

	folderID, err := svc.CreateFolder(context.Background(), "user-1", "Hypertrophy")
	require.NoError(t, err)

	var ids []string
	for _, name := range []string{"A", "B", "C"} {
		b := builder.New()
		b.MergeExercises([]domain.CatalogExercise{{ID: "x" + name, Name: name}})
		b.SetName(name)
		workoutID, err := svc.SaveSession(context.Background(), "user-1", b)
		require.NoError(t, err)
		require.NoError(t, svc.AddWorkoutToFolder(context.Background(), "user-1", folderID.Hex(), workoutID.Hex()))
		ids = append(ids, workoutID.Hex())
	}

	snapshots, err := svc.FetchFolderWorkouts(context.Background(), folderID.Hex())
	require.NoError(t, err)
	require.Len(t, snapshots, 3)

	reversed := []domain.WorkoutSnapshot{snapshots[2], snapshots[1], snapshots[0]}
	require.NoError(t, svc.ReorderFolderWorkouts(context.Background(), folderID.Hex(), reversed))

	snapshots, err = svc.FetchFolderWorkouts(context.Background(), folderID.Hex())
	require.NoError(t, err)
	assert.Equal(t, ids[2], snapshots[0].WorkoutID)

	require.NoError(t, svc.RemoveWorkoutFromFolder(context.Background(), folderID.Hex(), ids[1]))
	snapshots, err = svc.FetchFolderWorkouts(context.Background(), folderID.Hex())
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, ids[2], snapshots[0].WorkoutID)
	assert.Equal(t, ids[0], snapshots[1].WorkoutID)
}

func TestFolderOperationsOnMissingFolder(t *testing.T) {
	svc := NewWorkoutService(newFakeWorkoutRepo(), newFakeFolderRepo())
	missing := primitive.NewObjectID().Hex()

	snapshots, err := svc.FetchFolderWorkouts(context.Background(), missing)
	require.NoError(t, err)
	assert.Empty(t, snapshots)

	assert.ErrorIs(t, svc.DeleteFolder(context.Background(), missing), ErrFolderNotFound)
	assert.ErrorIs(t, svc.RemoveWorkoutFromFolder(context.Background(), missing, "w"), ErrFolderNotFound)
}
