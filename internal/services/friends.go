package services

import (
	"context"
	"fmt"
	"time"

	"friendsnap-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	pendingRequestLimit = 50
	friendListLimit     = 100
)

// FriendService governs the friend request lifecycle: a pair of users moves
// from no connection to a pending request to an accepted one, never back.
type FriendService struct {
	requests FriendRequestStore
	users    UserStore
	notifier Notifier
}

// NewFriendService creates a new friend service
func NewFriendService(requests FriendRequestStore, users UserStore, notifier Notifier) *FriendService {
	return &FriendService{
		requests: requests,
		users:    users,
		notifier: notifier,
	}
}

// PendingRequest is an incoming friend request enriched with the sender's
// public summary.
type PendingRequest struct {
	models.FriendRequest
	Sender *models.UserSummary `json:"sender,omitempty"`
}

// SendRequest creates a pending friend request from sender to receiver.
// Fails with ErrSelfRequest when sender == receiver and ErrDuplicateRequest
// when any request already links the pair, in either direction.
func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverID string) (*models.FriendRequest, error) {
	if senderID == receiverID {
		return nil, ErrSelfRequest
	}

	existing, err := s.requests.FindByPair(ctx, senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing request: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateRequest
	}

	req := &models.FriendRequest{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.requests.Insert(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	s.pushToUser(ctx, receiverID, "New friend request", "Someone wants to be your friend!")

	return req, nil
}

// Accept transitions a pending request to accepted. Only the receiver may
// accept; anything else fails with ErrNotFound.
func (s *FriendService) Accept(ctx context.Context, requestID, receiverID string) error {
	modified, err := s.requests.UpdateStatus(ctx, requestID, receiverID, models.StatusPending, models.StatusAccepted)
	if err != nil {
		return fmt.Errorf("failed to accept request: %w", err)
	}
	if modified == 0 {
		return ErrNotFound
	}
	return nil
}

// PendingFor returns the incoming pending requests for a receiver. Requests
// whose sender has vanished are returned without a sender summary.
func (s *FriendService) PendingFor(ctx context.Context, receiverID string) ([]PendingRequest, error) {
	requests, err := s.requests.ListPendingForReceiver(ctx, receiverID, pendingRequestLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	out := make([]PendingRequest, 0, len(requests))
	for _, req := range requests {
		pending := PendingRequest{FriendRequest: req}
		sender, err := s.users.GetByID(ctx, req.SenderID)
		if err == nil && sender != nil {
			summary := sender.Summary()
			pending.Sender = &summary
		}
		out = append(out, pending)
	}
	return out, nil
}

// Friends returns the public summaries of every user connected to userID by
// an accepted request, regardless of who sent it.
func (s *FriendService) Friends(ctx context.Context, userID string) ([]models.UserSummary, error) {
	accepted, err := s.requests.ListAcceptedForUser(ctx, userID, friendListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted requests: %w", err)
	}

	friends := make([]models.UserSummary, 0, len(accepted))
	for _, req := range accepted {
		friend, err := s.users.GetByID(ctx, req.Other(userID))
		if err != nil || friend == nil {
			continue
		}
		friends = append(friends, friend.Summary())
	}
	return friends, nil
}

// pushToUser sends a best-effort push notification to the user's registered
// device, if any.
func (s *FriendService) pushToUser(ctx context.Context, userID, title, body string) {
	if s.notifier == nil {
		return
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil || user == nil || user.PushToken == nil {
		return
	}
	if err := s.notifier.Push(ctx, *user.PushToken, title, body); err != nil {
		// Push failures never affect the request itself.
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to send push notification")
	}
}
