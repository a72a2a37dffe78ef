package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"sciencehub-backend/internal/analytics"
	"sciencehub-backend/internal/logger"
	"sciencehub-backend/internal/models"
	"sciencehub-backend/internal/utils"
)

type Handler struct {
	Service *analytics.Service
	Logger  *logger.Logger
}

func NewHandler(service *analytics.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

type trackPageViewRequest struct {
	Path      string `json:"path"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Referrer  string `json:"referrer"`
	UserAgent string `json:"user_agent"`
	IsAdmin   bool   `json:"is_admin"`
}

// TrackPageView handles POST /api/track-page-view.
func (h *Handler) TrackPageView(w http.ResponseWriter, r *http.Request) {
	var req trackPageViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Path == "" || req.SessionID == "" {
		utils.WriteError(w, http.StatusBadRequest, "path and session_id are required")
		return
	}

	view := models.PageView{
		Path:      req.Path,
		SessionID: req.SessionID,
		UserID:    req.UserID,
		Referrer:  req.Referrer,
		UserAgent: req.UserAgent,
		IsAdmin:   req.IsAdmin,
	}

	if err := h.Service.TrackPageView(r.Context(), view); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type updateTimeSpentRequest struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
	TimeSpent int    `json:"time_spent"`
}

// UpdateTimeSpent handles POST /api/update-time-spent.
func (h *Handler) UpdateTimeSpent(w http.ResponseWriter, r *http.Request) {
	var req updateTimeSpentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Path == "" || req.SessionID == "" {
		utils.WriteError(w, http.StatusBadRequest, "path and session_id are required")
		return
	}

	err := h.Service.RecordTimeSpent(r.Context(), req.SessionID, req.Path, req.TimeSpent)
	if errors.Is(err, analytics.ErrNoMatchingView) {
		utils.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetSummary handles GET /api/admin/analytics/summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.GetSummary(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}
