package repository

import (
	"context"
	"fmt"
	"time"

	"friendsnap-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReportRepository handles document store operations for abuse reports
type ReportRepository struct {
	coll *mongo.Collection
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{coll: db.Collection("reports")}
}

// Insert inserts a new report document
func (r *ReportRepository) Insert(ctx context.Context, report *models.Report) error {
	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// ListPending retrieves reports awaiting review
func (r *ReportRepository) ListPending(ctx context.Context, limit int) ([]models.Report, error) {
	filter := bson.M{"status": models.StatusPending}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}

// Resolve sets the report status and resolution time, returning the number
// of documents modified
func (r *ReportRepository) Resolve(ctx context.Context, id, status string, resolvedAt time.Time) (int64, error) {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "resolved_at": resolvedAt}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve report: %w", err)
	}
	return result.ModifiedCount, nil
}
