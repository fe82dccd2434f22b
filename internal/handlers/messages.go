package handlers

import (
	"encoding/json"
	"net/http"

	"friendsnap-backend/internal/middleware"
	"friendsnap-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// MessageHandler handles direct messaging HTTP requests
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	ReceiverID  string `json:"receiver_id"`
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
}

// Send handles POST /api/v1/messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ReceiverID == "" || req.Content == "" {
		respondError(w, "receiver_id and content are required", http.StatusBadRequest)
		return
	}

	msg, err := h.messageService.Send(ctx, userID, req.ReceiverID, req.Content, req.MessageType)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, msg)
}

// Conversation handles GET /api/v1/messages/{user_id}
func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	partnerID := chi.URLParam(r, "user_id")

	if partnerID == "" {
		respondError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	messages, err := h.messageService.Conversation(ctx, userID, partnerID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load conversation")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, messages)
}

// Conversations handles GET /api/v1/conversations
func (h *MessageHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	conversations, err := h.messageService.Conversations(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list conversations")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, conversations)
}
