package services

import (
	"context"
	"fmt"
	"time"

	"friendsnap-backend/internal/models"

	"github.com/google/uuid"
)

const pendingReportLimit = 100

// SafetyService handles blocking and abuse reporting.
type SafetyService struct {
	users   UserStore
	reports ReportStore
}

// NewSafetyService creates a new safety service
func NewSafetyService(users UserStore, reports ReportStore) *SafetyService {
	return &SafetyService{
		users:   users,
		reports: reports,
	}
}

// Block adds the target to the user's blocked set. Idempotent.
func (s *SafetyService) Block(ctx context.Context, userID, targetID string) error {
	if err := s.users.AddBlocked(ctx, userID, targetID); err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}
	return nil
}

// Unblock removes the target from the user's blocked set. Idempotent.
func (s *SafetyService) Unblock(ctx context.Context, userID, targetID string) error {
	if err := s.users.RemoveBlocked(ctx, userID, targetID); err != nil {
		return fmt.Errorf("failed to unblock user: %w", err)
	}
	return nil
}

// Report files an abuse report against a user or a photo.
func (s *SafetyService) Report(ctx context.Context, reporterID string, reportedUserID, reportedPhotoID *string, reason string) (*models.Report, error) {
	report := &models.Report{
		ID:              uuid.New().String(),
		ReporterID:      reporterID,
		ReportedUserID:  reportedUserID,
		ReportedPhotoID: reportedPhotoID,
		Reason:          reason,
		Status:          models.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.reports.Insert(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

// PendingReports lists reports awaiting review.
func (s *SafetyService) PendingReports(ctx context.Context) ([]models.Report, error) {
	reports, err := s.reports.ListPending(ctx, pendingReportLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// ResolveReport closes a report with the given action. Fails with
// ErrNotFound when the report does not exist.
func (s *SafetyService) ResolveReport(ctx context.Context, reportID, action string) error {
	modified, err := s.reports.Resolve(ctx, reportID, action, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to resolve report: %w", err)
	}
	if modified == 0 {
		return ErrNotFound
	}
	return nil
}
