package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/taskmanager/internal/structs"
	"github.com/ncobase/taskmanager/logging/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserFilter selects users. Zero fields do not constrain.
type UserFilter struct {
	ExcludeRole string
}

func (f UserFilter) bson() bson.M {
	q := bson.M{}
	if f.ExcludeRole != "" {
		q["role"] = bson.M{"$ne": f.ExcludeRole}
	}
	return q
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *structs.User) (*structs.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*structs.User, error)
	FindByEmail(ctx context.Context, email string) (*structs.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*structs.User, error)
	List(ctx context.Context, filter UserFilter) ([]*structs.User, error)
	Update(ctx context.Context, user *structs.User) (*structs.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type userRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *mongo.Database, logger *logger.Logger) UserRepository {
	collection := db.Collection("users")

	// Create unique index on email
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Warn(ctx, "failed to create index on email", "error", err)
	}

	return &userRepository{
		collection: collection,
		logger:     logger,
	}
}

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *structs.User) (*structs.User, error) {
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		r.logger.Error(ctx, "failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info(ctx, "user created", "id", user.ID.Hex())
	return user, nil
}

// FindByID retrieves a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*structs.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail retrieves a user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*structs.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, q bson.M) (*structs.User, error) {
	var user structs.User
	if err := r.collection.FindOne(ctx, q).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		r.logger.Error(ctx, "failed to find user", "error", err)
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindByIDs retrieves the users with the given IDs; missing IDs are skipped.
func (r *userRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*structs.User, error) {
	if len(ids) == 0 {
		return []*structs.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// List retrieves the users matching filter, sorted by name.
func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]*structs.User, error) {
	return r.find(ctx, filter.bson())
}

func (r *userRepository) find(ctx context.Context, q bson.M) ([]*structs.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, q, opts)
	if err != nil {
		r.logger.Error(ctx, "failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []*structs.User{}
	if err := cursor.All(ctx, &users); err != nil {
		r.logger.Error(ctx, "failed to decode users", "error", err)
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// Update updates an existing user.
func (r *userRepository) Update(ctx context.Context, user *structs.User) (*structs.User, error) {
	user.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":            user.Name,
			"email":           user.Email,
			"password":        user.Password,
			"profileImageUrl": user.ProfileImageURL,
			"role":            user.Role,
			"updatedAt":       user.UpdatedAt,
		},
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": user.ID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		r.logger.Error(ctx, "failed to update user", "id", user.ID.Hex(), "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	var updated structs.User
	if err := result.Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to decode updated user: %w", err)
	}

	r.logger.Info(ctx, "user updated", "id", user.ID.Hex())
	return &updated, nil
}

// Delete deletes a user by ID.
func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error(ctx, "failed to delete user", "id", id.Hex(), "error", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	r.logger.Info(ctx, "user deleted", "id", id.Hex())
	return nil
}
