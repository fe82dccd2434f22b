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
	conversationLimit = 200
	threadListLimit   = 50
)

// MessageService handles direct messaging between users.
type MessageService struct {
	messages MessageStore
	users    UserStore
	hub      *WSHub
	notifier Notifier
}

// NewMessageService creates a new message service
func NewMessageService(messages MessageStore, users UserStore, hub *WSHub, notifier Notifier) *MessageService {
	return &MessageService{
		messages: messages,
		users:    users,
		hub:      hub,
		notifier: notifier,
	}
}

// Send delivers a message to another user. Fails with ErrNotFound when the
// receiver does not exist and ErrBlocked when the receiver has blocked the
// sender. Online receivers get the message over their websocket; offline
// ones get a push notification when a device token is registered.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, content, messageType string) (*models.Message, error) {
	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to get receiver: %w", err)
	}
	if receiver == nil {
		return nil, ErrNotFound
	}
	if receiver.HasBlocked(senderID) {
		return nil, ErrBlocked
	}

	if messageType == "" {
		messageType = "text"
	}

	msg := &models.Message{
		ID:          uuid.New().String(),
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Content:     content,
		MessageType: messageType,
		IsRead:      false,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	s.deliver(ctx, receiver, msg)

	return msg, nil
}

// Conversation returns the thread between the user and a partner in
// chronological order, marking the partner's messages as read.
func (s *MessageService) Conversation(ctx context.Context, userID, partnerID string) ([]models.Message, error) {
	msgs, err := s.messages.ListBetween(ctx, userID, partnerID, conversationLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	if err := s.messages.MarkRead(ctx, partnerID, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to mark messages read")
	}

	return msgs, nil
}

// Conversations returns an overview of every thread the user participates
// in, newest first, with the partner's summary and unread count. Threads
// whose partner has vanished are skipped.
func (s *MessageService) Conversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	threads, err := s.messages.ListThreads(ctx, userID, threadListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	out := make([]models.Conversation, 0, len(threads))
	for _, t := range threads {
		partner, err := s.users.GetByID(ctx, t.PartnerID)
		if err != nil || partner == nil {
			continue
		}
		out = append(out, models.Conversation{
			Partner: partner.Summary(),
			LastMessage: models.LastMessage{
				Content:   t.LastMessage.Content,
				CreatedAt: t.LastMessage.CreatedAt,
				IsMine:    t.LastMessage.SenderID == userID,
			},
			UnreadCount: t.UnreadCount,
		})
	}
	return out, nil
}

// deliver pushes the message to the receiver over websocket when online,
// falling back to a push notification. Delivery is best effort; the message
// is already persisted.
func (s *MessageService) deliver(ctx context.Context, receiver *models.User, msg *models.Message) {
	if s.hub != nil && s.hub.IsOnline(receiver.ID) {
		if err := s.hub.SendMessage(receiver.ID, msg); err != nil {
			log.Warn().Err(err).Str("receiver_id", receiver.ID).Msg("Failed to deliver message over websocket")
		}
		return
	}

	if s.notifier != nil && receiver.PushToken != nil {
		if err := s.notifier.Push(ctx, *receiver.PushToken, "New message", msg.Content); err != nil {
			log.Warn().Err(err).Str("receiver_id", receiver.ID).Msg("Failed to send push notification")
		}
	}
}
