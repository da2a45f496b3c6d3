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

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// CreateProfile inserts the profile document for an existing identity.
func (r *mongoUserRepository) CreateProfile(ctx context.Context, user *domain.User) error {
	if user.UID == "" || user.Email == "" {
		return repository.ErrValidation
	}

	if user.ID == primitive.NilObjectID {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("profile for this user already exists")
		}
		return err
	}
	return nil
}

// GetByUID retrieves a user profile by the opaque identity id.
func (r *mongoUserRepository) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"uid": uid}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ProfileExists reports whether a profile document exists for uid.
// Absence is a regular false result, not an error.
func (r *mongoUserRepository) ProfileExists(ctx context.Context, uid string) (bool, error) {
	if uid == "" {
		return false, nil
	}
	count, err := r.collection.CountDocuments(ctx, bson.M{"uid": uid}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// EnsureProfile creates the profile document only when none exists for
// the user's uid. Used by sign-in paths where the identity may predate
// the profile (federated accounts).
func (r *mongoUserRepository) EnsureProfile(ctx context.Context, user *domain.User) error {
	if user.UID == "" || user.Email == "" {
		return repository.ErrValidation
	}

	exists, err := r.ProfileExists(ctx, user.UID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return r.CreateProfile(ctx, user)
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "uid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
