package handlers

import (
	"net/http"

	"friendsnap-backend/internal/middleware"
	"friendsnap-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// FriendHandler handles friend suggestion and request HTTP requests
type FriendHandler struct {
	matchingService *services.MatchingService
	friendService   *services.FriendService
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(matchingService *services.MatchingService, friendService *services.FriendService) *FriendHandler {
	return &FriendHandler{
		matchingService: matchingService,
		friendService:   friendService,
	}
}

// Suggestions handles GET /api/v1/friends/suggestions
func (h *FriendHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	suggestions, err := h.matchingService.Rank(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to rank suggestions")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, suggestions)
}

// SendRequest handles POST /api/v1/friends/request/{user_id}
func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	receiverID := chi.URLParam(r, "user_id")

	if receiverID == "" {
		respondError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	if _, err := h.friendService.SendRequest(ctx, userID, receiverID); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Str("sender_id", userID).Str("receiver_id", receiverID).Msg("Friend request sent")

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Friend request sent!"})
}

// PendingRequests handles GET /api/v1/friends/requests
func (h *FriendHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	requests, err := h.friendService.PendingFor(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list friend requests")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, requests)
}

// Accept handles POST /api/v1/friends/accept/{request_id}
func (h *FriendHandler) Accept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	requestID := chi.URLParam(r, "request_id")

	if requestID == "" {
		respondError(w, "request_id is required", http.StatusBadRequest)
		return
	}

	if err := h.friendService.Accept(ctx, requestID, userID); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("request_id", requestID).Msg("Friend request accepted")

	respondJSON(w, http.StatusOK, MessageResponse{Message: "You are now friends!"})
}

// List handles GET /api/v1/friends/list
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	friends, err := h.friendService.Friends(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list friends")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, friends)
}
