package handlers

import (
	"encoding/json"
	"net/http"

	"friendsnap-backend/internal/middleware"
	"friendsnap-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PhotoHandler handles photo-related HTTP requests
type PhotoHandler struct {
	photoService *services.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// UploadRequest represents the request body for a photo upload
type UploadRequest struct {
	ImageBase64 string `json:"image_base64"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Upload handles POST /api/v1/photos
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ImageBase64 == "" {
		respondError(w, "image_base64 is required", http.StatusBadRequest)
		return
	}

	photo, err := h.photoService.Upload(ctx, userID, req.ImageBase64, req.Category, req.Description)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to upload photo")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("photo_id", photo.ID).
		Str("category", photo.Category).
		Msg("Photo uploaded")

	respondJSON(w, http.StatusOK, photo)
}

// Mine handles GET /api/v1/photos/mine
func (h *PhotoHandler) Mine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	photos, err := h.photoService.MyPhotos(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list photos")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, photos)
}

// Feed handles GET /api/v1/photos/feed
func (h *PhotoHandler) Feed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	feed, err := h.photoService.Feed(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load feed")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, feed)
}

// Delete handles DELETE /api/v1/photos/{photo_id}
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	photoID := chi.URLParam(r, "photo_id")

	if photoID == "" {
		respondError(w, "photo_id is required", http.StatusBadRequest)
		return
	}

	if err := h.photoService.Delete(ctx, photoID, userID); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("photo_id", photoID).Msg("Photo deleted")

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Photo deleted"})
}
