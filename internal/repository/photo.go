package repository

import (
	"context"
	"fmt"

	"friendsnap-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PhotoRepository handles document store operations for photos
type PhotoRepository struct {
	coll *mongo.Collection
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *mongo.Database) *PhotoRepository {
	return &PhotoRepository{coll: db.Collection("photos")}
}

// Create inserts a new photo document
func (r *PhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	if _, err := r.coll.InsertOne(ctx, photo); err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}
	return nil
}

// ListApprovedByUser retrieves a user's approved photos, newest first
func (r *PhotoRepository) ListApprovedByUser(ctx context.Context, userID string, limit int) ([]models.Photo, error) {
	filter := bson.M{"user_id": userID, "is_approved": true}
	return r.list(ctx, filter, limit)
}

// ListApproved retrieves approved photos from users not in exclude, newest
// first
func (r *PhotoRepository) ListApproved(ctx context.Context, exclude []string, limit int) ([]models.Photo, error) {
	if exclude == nil {
		exclude = []string{}
	}
	filter := bson.M{
		"is_approved": true,
		"user_id":     bson.M{"$nin": exclude},
	}
	return r.list(ctx, filter, limit)
}

func (r *PhotoRepository) list(ctx context.Context, filter bson.M, limit int) ([]models.Photo, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer cursor.Close(ctx)

	var photos []models.Photo
	if err := cursor.All(ctx, &photos); err != nil {
		return nil, fmt.Errorf("failed to decode photos: %w", err)
	}
	return photos, nil
}

// Delete removes a photo owned by ownerID, reporting whether a document was
// deleted
func (r *PhotoRepository) Delete(ctx context.Context, photoID, ownerID string) (bool, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": photoID, "user_id": ownerID})
	if err != nil {
		return false, fmt.Errorf("failed to delete photo: %w", err)
	}
	return result.DeletedCount > 0, nil
}
