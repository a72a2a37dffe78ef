package event_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"sciencehub-backend/internal/events"
	"sciencehub-backend/internal/logger"
	"sciencehub-backend/internal/models"
	"sciencehub-backend/internal/notify"
	"sciencehub-backend/internal/utils"
)

type Handler struct {
	Service  *events.Service
	Notifier *notify.Notifier
	Logger   *logger.Logger
}

func NewHandler(service *events.Service, notifier *notify.Notifier, log *logger.Logger) *Handler {
	return &Handler{Service: service, Notifier: notifier, Logger: log}
}

type saveEventRequest struct {
	EventData models.Event `json:"eventData"`
	IsNew     bool         `json:"isNew"`
}

// SaveEvent handles POST /api/save-event.
func (h *Handler) SaveEvent(w http.ResponseWriter, r *http.Request) {
	var req saveEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.EventData.Title == "" {
		utils.WriteError(w, http.StatusBadRequest, "event title is required")
		return
	}

	saved, err := h.Service.SaveEvent(req.EventData, req.IsNew)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	action := "updated"
	if req.IsNew {
		action = "created"
	}
	go h.Notifier.Send(fmt.Sprintf("Event %s: %s (%s)", action, saved.Title, saved.ID))

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(
		fmt.Sprintf("event %s", action), saved))
}

// ListEvents handles GET /api/events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListEvents()
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("events", list))
}

// GetSettings handles GET /api/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.GetSettings()
	if errors.Is(err, events.ErrSettingsNotFound) {
		utils.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, settings)
}

// SaveSettings handles PUT /api/settings.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.SiteSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.Service.SaveSettings(settings); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("settings saved", nil))
}
