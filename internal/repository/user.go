package repository

import (
	"context"
	"errors"
	"fmt"

	"friendsnap-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository handles document store operations for users
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection("users")}
}

// Create inserts a new user document
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID, returning nil when absent
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByNickname retrieves a user by nickname, returning nil when absent
func (r *UserRepository) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"nickname": nickname}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by nickname: %w", err)
	}
	return &user, nil
}

// ListActive retrieves active users whose ids are not in exclude
func (r *UserRepository) ListActive(ctx context.Context, exclude []string, limit int) ([]models.User, error) {
	if exclude == nil {
		exclude = []string{}
	}
	filter := bson.M{
		"id":        bson.M{"$nin": exclude},
		"is_active": true,
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// AddBlocked adds a user id to the blocked set
func (r *UserRepository) AddBlocked(ctx context.Context, userID, blockedID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": userID},
		bson.M{"$addToSet": bson.M{"blocked_users": blockedID}},
	)
	if err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}
	return nil
}

// RemoveBlocked removes a user id from the blocked set
func (r *UserRepository) RemoveBlocked(ctx context.Context, userID, blockedID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": userID},
		bson.M{"$pull": bson.M{"blocked_users": blockedID}},
	)
	if err != nil {
		return fmt.Errorf("failed to unblock user: %w", err)
	}
	return nil
}

// UpdatePushToken updates the push token for a user
func (r *UserRepository) UpdatePushToken(ctx context.Context, userID string, pushToken *string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": userID},
		bson.M{"$set": bson.M{"push_token": pushToken}},
	)
	if err != nil {
		return fmt.Errorf("failed to update push token: %w", err)
	}
	return nil
}
