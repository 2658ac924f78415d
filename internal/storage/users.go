package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type userDoc struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Email        string        `bson:"email"`
	PasswordHash []byte        `bson:"password"`
}

func (d *userDoc) toUser() *User {
	return &User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
	}
}

// Users is the repository over the users collection.
type Users struct {
	col *mongo.Collection
}

// NewUsers creates the users repository.
func NewUsers(db *mongo.Database) *Users {
	return &Users{col: db.Collection(CollectionUsers)}
}

// Create inserts a new user and returns it with the engine-assigned id.
func (r *Users) Create(ctx context.Context, email string, passwordHash []byte) (*User, error) {
	res, err := r.col.InsertOne(ctx, userDoc{Email: email, PasswordHash: passwordHash})
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return &User{ID: id.Hex(), Email: email, PasswordHash: passwordHash}, nil
}

// GetByEmail looks a user up by exact email.
func (r *Users) GetByEmail(ctx context.Context, email string) (*User, error) {
	var doc userDoc
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return doc.toUser(), nil
}

// GetByID looks a user up by its 24-hex id.
func (r *Users) GetByID(ctx context.Context, id string) (*User, error) {
	oid, err := bson.ObjectIDFromHex(normalizeID(id))
	if err != nil {
		return nil, ErrUserNotFound
	}

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return doc.toUser(), nil
}

// Count returns the number of registered users.
func (r *Users) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
