package handlers

import (
	"encoding/json"
	"net/http"

	"friendsnap-backend/internal/middleware"
	"friendsnap-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
	Password  string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Nickname == "" || req.Password == "" {
		respondError(w, "nickname and password are required", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Register(r.Context(), req.Nickname, req.AvatarURL, req.Password)
	if err != nil {
		log.Error().Err(err).Str("nickname", req.Nickname).Msg("Failed to register user")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", result.User.ID).Msg("User registered")

	respondJSON(w, http.StatusOK, result)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Nickname, req.Password)
	if err != nil {
		respondError(w, "Wrong nickname or password. Try again!", http.StatusUnauthorized)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// PushTokenRequest represents the request body for push token registration
type PushTokenRequest struct {
	PushToken *string `json:"push_token"`
}

// PushToken handles POST /api/v1/push-token
func (h *AuthHandler) PushToken(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req PushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.authService.RegisterPushToken(r.Context(), userID, req.PushToken); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to register push token")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Push token registered"})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	summary, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
