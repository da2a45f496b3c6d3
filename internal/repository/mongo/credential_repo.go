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

const credentialCollectionName = "auth_credentials"

// mongoCredentialRepository implements repository.CredentialRepository.
type mongoCredentialRepository struct {
	collection *mongo.Collection
}

// NewMongoCredentialRepository creates a new Credential repository.
func NewMongoCredentialRepository(db *mongo.Database) repository.CredentialRepository {
	return &mongoCredentialRepository{
		collection: db.Collection(credentialCollectionName),
	}
}

// Create registers a new identity. The opaque uid handed to the rest of
// the system is the hex of the identity document's id.
func (r *mongoCredentialRepository) Create(ctx context.Context, email, passwordHash string) (string, error) {
	if email == "" || passwordHash == "" {
		return "", repository.ErrValidation
	}

	cred := domain.Credential{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	cred.UID = cred.ID.Hex()

	_, err := r.collection.InsertOne(ctx, cred)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", errors.New("identity with this email already exists")
		}
		return "", err
	}
	return cred.UID, nil
}

// GetByEmail retrieves an identity by its email address.
func (r *mongoCredentialRepository) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	var cred domain.Credential
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&cred)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &cred, nil
}

// EnsureCredentialIndexes creates necessary indexes. Call during startup.
func EnsureCredentialIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
