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

const workoutCollectionName = "user_workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Save inserts a new workout document owned by uid. An empty name falls
// back to the default workout name; nil maps are stored as empty maps so
// read paths never see a missing field on fresh documents.
func (r *mongoWorkoutRepository) Save(ctx context.Context, uid, name string, exercises []domain.WorkoutExercise, supersets, supersetColors map[string]string) (primitive.ObjectID, error) {
	if uid == "" {
		return primitive.NilObjectID, repository.ErrValidation
	}
	if name == "" {
		name = domain.DefaultWorkoutName
	}
	if exercises == nil {
		exercises = []domain.WorkoutExercise{}
	}
	if supersets == nil {
		supersets = map[string]string{}
	}
	if supersetColors == nil {
		supersetColors = map[string]string{}
	}

	doc := bson.M{
		"uid":            uid,
		"workoutName":    name,
		"exercises":      exercises,
		"supersets":      supersets,
		"supersetColors": supersetColors,
		"createdAt":      time.Now().UTC(),
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// FetchByUID retrieves all workouts owned by uid, newest first.
func (r *mongoWorkoutRepository) FetchByUID(ctx context.Context, uid string) ([]domain.Workout, error) {
	if uid == "" {
		return nil, repository.ErrValidation
	}
	filter := bson.M{"uid": uid}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		id, _ := doc["_id"].(primitive.ObjectID)
		workouts = append(workouts, decodeWorkout(id, doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

// FetchByID retrieves a single workout. The filter matches on both owner
// and id, so a valid id belonging to another user yields ErrNotFound.
func (r *mongoWorkoutRepository) FetchByID(ctx context.Context, uid string, workoutID primitive.ObjectID) (*domain.Workout, error) {
	if uid == "" || workoutID == primitive.NilObjectID {
		return nil, repository.ErrValidation
	}
	filter := bson.M{"uid": uid, "_id": workoutID}

	var doc bson.M
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	workout := decodeWorkout(workoutID, doc)
	return &workout, nil
}

// Update overwrites the mutable workout fields wholesale. No partial
// patches: the exercise list and both superset maps replace the stored
// ones entirely.
func (r *mongoWorkoutRepository) Update(ctx context.Context, uid string, workoutID primitive.ObjectID, name string, exercises []domain.WorkoutExercise, supersets, supersetColors map[string]string) error {
	if uid == "" || workoutID == primitive.NilObjectID {
		return repository.ErrValidation
	}
	if exercises == nil {
		exercises = []domain.WorkoutExercise{}
	}
	if supersets == nil {
		supersets = map[string]string{}
	}
	if supersetColors == nil {
		supersetColors = map[string]string{}
	}

	filter := bson.M{"_id": workoutID}
	updateDoc := bson.M{
		"$set": bson.M{
			"uid":            uid,
			"workoutName":    name,
			"exercises":      exercises,
			"supersets":      supersets,
			"supersetColors": supersetColors,
			"updatedAt":      time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the workout by id without an ownership check; callers
// are trusted and must remove folder references themselves.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, workoutID primitive.ObjectID) error {
	if workoutID == primitive.NilObjectID {
		return repository.ErrValidation
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": workoutID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Owner listing sorted by creation time, newest first.
			Keys:    bson.D{{Key: "uid", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
