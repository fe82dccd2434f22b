package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"friendsnap-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	myPhotosLimit = 100
	feedLimit     = 50
)

// PhotoService handles photo upload with moderation, feeds and deletion.
type PhotoService struct {
	photos     PhotoStore
	users      UserStore
	media      MediaStore
	classifier Classifier
}

// NewPhotoService creates a new photo service
func NewPhotoService(photos PhotoStore, users UserStore, media MediaStore, classifier Classifier) *PhotoService {
	return &PhotoService{
		photos:     photos,
		users:      users,
		media:      media,
		classifier: classifier,
	}
}

// FeedPhoto is a feed entry enriched with the owner's public summary.
type FeedPhoto struct {
	models.Photo
	User *models.UserSummary `json:"user,omitempty"`
}

// Upload analyses the image, rejects photos of non-famous people, stores
// the image bytes and creates the photo document. When the classifier is
// unavailable the upload proceeds with a safe default instead of failing.
func (s *PhotoService) Upload(ctx context.Context, userID, imageBase64, category, description string) (*models.Photo, error) {
	analysis, err := s.classifier.Classify(ctx, imageBase64)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Image analysis failed, using safe default")
		analysis = safeDefaultResult()
	}

	if analysis.ContainsPeople && !analysis.IsFamousPerson {
		return nil, ErrPeopleDetected
	}

	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, fmt.Errorf("invalid image data: %w", err)
	}

	photoID := uuid.New().String()
	imageURL, err := s.media.Put(ctx, fmt.Sprintf("%s/%s.jpg", userID, photoID), "image/jpeg", data)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	photo := &models.Photo{
		ID:          photoID,
		UserID:      userID,
		ImageURL:    imageURL,
		Category:    resolveCategory(analysis.Category, category),
		Tags:        analysis.Tags,
		Description: resolveDescription(description, analysis.Description),
		IsApproved:  true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}

	return photo, nil
}

// MyPhotos returns the user's approved photos, newest first.
func (s *PhotoService) MyPhotos(ctx context.Context, userID string) ([]models.Photo, error) {
	photos, err := s.photos.ListApprovedByUser(ctx, userID, myPhotosLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}

// Feed returns recent approved photos from everyone the viewer has not
// blocked, each enriched with the owner's summary. Photos whose owner has
// vanished are returned without one.
func (s *PhotoService) Feed(ctx context.Context, viewerID string) ([]FeedPhoto, error) {
	viewer, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer: %w", err)
	}
	if viewer == nil {
		return nil, ErrNotFound
	}

	photos, err := s.photos.ListApproved(ctx, viewer.BlockedUsers, feedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}

	feed := make([]FeedPhoto, 0, len(photos))
	for _, photo := range photos {
		entry := FeedPhoto{Photo: photo}
		owner, err := s.users.GetByID(ctx, photo.UserID)
		if err == nil && owner != nil {
			summary := owner.Summary()
			entry.User = &summary
		}
		feed = append(feed, entry)
	}
	return feed, nil
}

// Delete removes the user's own photo. Deleting a photo that does not exist
// or belongs to someone else fails with ErrNotFound.
func (s *PhotoService) Delete(ctx context.Context, photoID, ownerID string) error {
	deleted, err := s.photos.Delete(ctx, photoID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// safeDefaultResult is used when image analysis fails: the photo is allowed
// through but tagged for later review rather than rejected.
func safeDefaultResult() *models.ModerationResult {
	return &models.ModerationResult{
		ContainsPeople: false,
		IsFamousPerson: false,
		Category:       models.CategoryOther,
		Tags:           []string{"unanalyzed"},
		Description:    "Image pending review",
	}
}

func resolveCategory(detected, requested string) string {
	if detected != "" {
		return detected
	}
	if requested != "" {
		return requested
	}
	return models.CategoryOther
}

func resolveDescription(requested, detected string) string {
	if requested != "" {
		return requested
	}
	return detected
}
