package services

import (
	"context"
	"time"

	"friendsnap-backend/internal/models"
)

// Store interfaces are satisfied by the mongo repositories and by in-memory
// fakes in tests. Services never touch the driver directly.

// UserStore handles user documents.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	// GetByID and GetByNickname return (nil, nil) when no such user exists.
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)
	// ListActive returns active users whose ids are not in exclude.
	ListActive(ctx context.Context, exclude []string, limit int) ([]models.User, error)
	AddBlocked(ctx context.Context, userID, blockedID string) error
	RemoveBlocked(ctx context.Context, userID, blockedID string) error
	UpdatePushToken(ctx context.Context, userID string, pushToken *string) error
}

// PhotoStore handles photo documents.
type PhotoStore interface {
	Create(ctx context.Context, photo *models.Photo) error
	// ListApprovedByUser returns the user's approved photos, newest first.
	ListApprovedByUser(ctx context.Context, userID string, limit int) ([]models.Photo, error)
	// ListApproved returns approved photos from any user not in exclude,
	// newest first.
	ListApproved(ctx context.Context, exclude []string, limit int) ([]models.Photo, error)
	// Delete removes the photo if it belongs to ownerID and reports whether
	// a document was removed.
	Delete(ctx context.Context, photoID, ownerID string) (bool, error)
}

// FriendRequestStore handles friend request documents.
type FriendRequestStore interface {
	Insert(ctx context.Context, req *models.FriendRequest) error
	// FindByPair returns the request linking a and b in either direction,
	// or nil when none exists.
	FindByPair(ctx context.Context, a, b string) (*models.FriendRequest, error)
	// UpdateStatus conditionally transitions the request identified by id
	// and receiverID from expected to status, returning the number of
	// documents modified.
	UpdateStatus(ctx context.Context, id, receiverID, expected, status string) (int64, error)
	ListPendingForReceiver(ctx context.Context, receiverID string, limit int) ([]models.FriendRequest, error)
	// ListForUser returns every request involving the user, any status.
	ListForUser(ctx context.Context, userID string, limit int) ([]models.FriendRequest, error)
	ListAcceptedForUser(ctx context.Context, userID string, limit int) ([]models.FriendRequest, error)
}

// MessageStore handles direct message documents.
type MessageStore interface {
	Insert(ctx context.Context, msg *models.Message) error
	// ListBetween returns messages between the two users in chronological
	// order.
	ListBetween(ctx context.Context, a, b string, limit int) ([]models.Message, error)
	// MarkRead marks messages from senderID to receiverID as read.
	MarkRead(ctx context.Context, senderID, receiverID string) error
	// ListThreads returns one entry per conversation partner of userID,
	// newest thread first.
	ListThreads(ctx context.Context, userID string, limit int) ([]Thread, error)
}

// Thread is a raw conversation row produced by the message store.
type Thread struct {
	PartnerID   string
	LastMessage models.Message
	UnreadCount int
}

// ReportStore handles report documents.
type ReportStore interface {
	Insert(ctx context.Context, report *models.Report) error
	ListPending(ctx context.Context, limit int) ([]models.Report, error)
	// Resolve sets the report status and resolution time, returning the
	// number of documents modified.
	Resolve(ctx context.Context, id, status string, resolvedAt time.Time) (int64, error)
}

// MediaStore persists raw image bytes and returns a public URL.
type MediaStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Classifier analyses an uploaded image for moderation and tagging.
type Classifier interface {
	Classify(ctx context.Context, imageBase64 string) (*models.ModerationResult, error)
}

// Notifier delivers push notifications to a device token.
type Notifier interface {
	Push(ctx context.Context, deviceToken, title, body string) error
}
