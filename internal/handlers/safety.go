package handlers

import (
	"encoding/json"
	"net/http"

	"friendsnap-backend/internal/middleware"
	"friendsnap-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// SafetyHandler handles blocking, reporting and report review HTTP requests
type SafetyHandler struct {
	safetyService *services.SafetyService
}

// NewSafetyHandler creates a new safety handler
func NewSafetyHandler(safetyService *services.SafetyService) *SafetyHandler {
	return &SafetyHandler{
		safetyService: safetyService,
	}
}

// BlockRequest represents the request body for blocking a user
type BlockRequest struct {
	BlockedUserID string `json:"blocked_user_id"`
}

// ReportRequest represents the request body for filing a report
type ReportRequest struct {
	ReportedUserID  *string `json:"reported_user_id"`
	ReportedPhotoID *string `json:"reported_photo_id"`
	Reason          string  `json:"reason"`
}

// Block handles POST /api/v1/block
func (h *SafetyHandler) Block(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req BlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.BlockedUserID == "" {
		respondError(w, "blocked_user_id is required", http.StatusBadRequest)
		return
	}

	if err := h.safetyService.Block(ctx, userID, req.BlockedUserID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to block user")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("blocked_id", req.BlockedUserID).Msg("User blocked")

	respondJSON(w, http.StatusOK, MessageResponse{Message: "User blocked"})
}

// Unblock handles POST /api/v1/unblock/{user_id}
func (h *SafetyHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	targetID := chi.URLParam(r, "user_id")

	if targetID == "" {
		respondError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	if err := h.safetyService.Unblock(ctx, userID, targetID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to unblock user")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "User unblocked"})
}

// Report handles POST /api/v1/report
func (h *SafetyHandler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Reason == "" {
		respondError(w, "reason is required", http.StatusBadRequest)
		return
	}

	if _, err := h.safetyService.Report(ctx, userID, req.ReportedUserID, req.ReportedPhotoID, req.Reason); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to file report")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Thank you for reporting. We will review this."})
}

// PendingReports handles GET /api/v1/admin/reports
func (h *SafetyHandler) PendingReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.safetyService.PendingReports(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list reports")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, reports)
}

// ResolveReport handles POST /api/v1/admin/reports/{report_id}/resolve
func (h *SafetyHandler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "report_id")
	if reportID == "" {
		respondError(w, "report_id is required", http.StatusBadRequest)
		return
	}

	action := r.URL.Query().Get("action")
	if action == "" {
		action = "dismissed"
	}

	if err := h.safetyService.ResolveReport(r.Context(), reportID, action); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Report resolved"})
}
