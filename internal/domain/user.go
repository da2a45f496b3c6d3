package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Credential is one identity record: an opaque uid bound to an email
// and password hash. Identities and profiles are stored apart, so an
// identity can exist without its profile document.
type Credential struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UID          string             `bson:"uid" json:"uid"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // never exposed
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// User is one profile document in the users collection, keyed by the
// identity's uid. Two signup paths exist: the username path and the
// name/surname path, so either Username or Name+Surname may be set.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UID       string             `bson:"uid" json:"uid"`
	Username  string             `bson:"username,omitempty" json:"username,omitempty"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Surname   string             `bson:"surname,omitempty" json:"surname,omitempty"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// DisplayName prefers the username, falling back to "Name Surname".
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}
