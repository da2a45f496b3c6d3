package mongo

import (
	"context"
	"errors"
	"time"

	"trackfit/workout-app/internal/domain"
	"trackfit/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const folderCollectionName = "user_workout_folders"

// mongoFolderRepository implements repository.FolderRepository.
//
// The embedded workout list is mutated read-modify-write with no
// concurrency token. Two sessions writing the same folder concurrently
// are last-write-wins on the full list; an accepted limitation.
type mongoFolderRepository struct {
	collection *mongo.Collection
}

// NewMongoFolderRepository creates a new Folder repository.
func NewMongoFolderRepository(db *mongo.Database) repository.FolderRepository {
	return &mongoFolderRepository{
		collection: db.Collection(folderCollectionName),
	}
}

// Create inserts a folder with an empty embedded workout list.
func (r *mongoFolderRepository) Create(ctx context.Context, uid, folderName string) (primitive.ObjectID, error) {
	if uid == "" || folderName == "" {
		return primitive.NilObjectID, repository.ErrValidation
	}

	doc := bson.M{
		"uid":        uid,
		"folderName": folderName,
		"workouts":   []domain.WorkoutSnapshot{},
		"createdAt":  time.Now().UTC(),
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted folder ID")
	}
	return insertedID, nil
}

// FetchByUID lists the user's folders as id/name pairs, unordered.
func (r *mongoFolderRepository) FetchByUID(ctx context.Context, uid string) ([]domain.FolderRef, error) {
	if uid == "" {
		return nil, repository.ErrValidation
	}

	projection := options.Find().SetProjection(bson.M{"folderName": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"uid": uid}, projection)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	refs := []domain.FolderRef{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		id, _ := doc["_id"].(primitive.ObjectID)
		refs = append(refs, domain.FolderRef{
			ID:         id.Hex(),
			FolderName: asString(doc, "folderName", ""),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

// AddWorkout reads the folder, appends the snapshot to its embedded
// list and writes the full list back.
func (r *mongoFolderRepository) AddWorkout(ctx context.Context, folderID primitive.ObjectID, snapshot domain.WorkoutSnapshot) error {
	existing, err := r.fetchSnapshots(ctx, folderID)
	if err != nil {
		return err
	}
	return r.writeSnapshots(ctx, folderID, append(existing, snapshot))
}

// FetchWorkouts returns the folder's embedded snapshot list, empty when
// the folder is missing.
func (r *mongoFolderRepository) FetchWorkouts(ctx context.Context, folderID primitive.ObjectID) ([]domain.WorkoutSnapshot, error) {
	snapshots, err := r.fetchSnapshots(ctx, folderID)
	if errors.Is(err, repository.ErrNotFound) {
		return []domain.WorkoutSnapshot{}, nil
	}
	return snapshots, err
}

// ReorderWorkouts overwrites the embedded list with the caller-supplied
// order. The new order is decided upstream; no ordering logic here.
func (r *mongoFolderRepository) ReorderWorkouts(ctx context.Context, folderID primitive.ObjectID, ordered []domain.WorkoutSnapshot) error {
	if ordered == nil {
		ordered = []domain.WorkoutSnapshot{}
	}
	return r.writeSnapshots(ctx, folderID, ordered)
}

// RemoveWorkout filters the embedded list by snapshot id and writes it
// back, leaving all other entries and their order intact.
func (r *mongoFolderRepository) RemoveWorkout(ctx context.Context, folderID primitive.ObjectID, workoutID string) error {
	existing, err := r.fetchSnapshots(ctx, folderID)
	if err != nil {
		return err
	}

	remaining := make([]domain.WorkoutSnapshot, 0, len(existing))
	for _, snapshot := range existing {
		if snapshot.WorkoutID != workoutID {
			remaining = append(remaining, snapshot)
		}
	}
	return r.writeSnapshots(ctx, folderID, remaining)
}

// Delete removes the folder document unconditionally.
func (r *mongoFolderRepository) Delete(ctx context.Context, folderID primitive.ObjectID) error {
	if folderID == primitive.NilObjectID {
		return repository.ErrValidation
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": folderID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoFolderRepository) fetchSnapshots(ctx context.Context, folderID primitive.ObjectID) ([]domain.WorkoutSnapshot, error) {
	if folderID == primitive.NilObjectID {
		return nil, repository.ErrValidation
	}

	var doc bson.M
	if err := r.collection.FindOne(ctx, bson.M{"_id": folderID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	snapshots := []domain.WorkoutSnapshot{}
	for _, snapDoc := range asDocSlice(doc, "workouts") {
		snapshots = append(snapshots, decodeSnapshot(snapDoc))
	}
	return snapshots, nil
}

func (r *mongoFolderRepository) writeSnapshots(ctx context.Context, folderID primitive.ObjectID, snapshots []domain.WorkoutSnapshot) error {
	updateDoc := bson.M{
		"$set": bson.M{
			"workouts":  snapshots,
			"updatedAt": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": folderID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureFolderIndexes creates necessary indexes. Call during startup.
func EnsureFolderIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "uid", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
