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

// FriendRequestRepository handles document store operations for friend
// requests
type FriendRequestRepository struct {
	coll *mongo.Collection
}

// NewFriendRequestRepository creates a new friend request repository
func NewFriendRequestRepository(db *mongo.Database) *FriendRequestRepository {
	return &FriendRequestRepository{coll: db.Collection("friend_requests")}
}

// Insert inserts a new friend request document
func (r *FriendRequestRepository) Insert(ctx context.Context, req *models.FriendRequest) error {
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create friend request: %w", err)
	}
	return nil
}

// FindByPair retrieves the request linking a and b in either direction,
// returning nil when none exists
func (r *FriendRequestRepository) FindByPair(ctx context.Context, a, b string) (*models.FriendRequest, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": a, "receiver_id": b},
		bson.M{"sender_id": b, "receiver_id": a},
	}}

	var req models.FriendRequest
	err := r.coll.FindOne(ctx, filter).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find friend request: %w", err)
	}
	return &req, nil
}

// UpdateStatus conditionally transitions the request from expected to
// status, returning the number of documents modified
func (r *FriendRequestRepository) UpdateStatus(ctx context.Context, id, receiverID, expected, status string) (int64, error) {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "receiver_id": receiverID, "status": expected},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update friend request: %w", err)
	}
	return result.ModifiedCount, nil
}

// ListPendingForReceiver retrieves pending requests addressed to the
// receiver
func (r *FriendRequestRepository) ListPendingForReceiver(ctx context.Context, receiverID string, limit int) ([]models.FriendRequest, error) {
	filter := bson.M{"receiver_id": receiverID, "status": models.StatusPending}
	return r.list(ctx, filter, limit)
}

// ListForUser retrieves every request involving the user, any status
func (r *FriendRequestRepository) ListForUser(ctx context.Context, userID string, limit int) ([]models.FriendRequest, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID},
		bson.M{"receiver_id": userID},
	}}
	return r.list(ctx, filter, limit)
}

// ListAcceptedForUser retrieves accepted requests involving the user
func (r *FriendRequestRepository) ListAcceptedForUser(ctx context.Context, userID string, limit int) ([]models.FriendRequest, error) {
	filter := bson.M{
		"status": models.StatusAccepted,
		"$or": bson.A{
			bson.M{"sender_id": userID},
			bson.M{"receiver_id": userID},
		},
	}
	return r.list(ctx, filter, limit)
}

func (r *FriendRequestRepository) list(ctx context.Context, filter bson.M, limit int) ([]models.FriendRequest, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.FriendRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode friend requests: %w", err)
	}
	return requests, nil
}
