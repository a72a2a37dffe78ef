package availability_api

import (
	"encoding/json"
	"net/http"
	"time"

	"sciencehub-backend/internal/availability"
	"sciencehub-backend/internal/logger"
	"sciencehub-backend/internal/utils"
)

const dateFormat = "2006-01-02"

type Handler struct {
	Service *availability.Service
	Logger  *logger.Logger
}

func NewHandler(service *availability.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

type daysRequest struct {
	From string `json:"from"` // "2006-01-02"
	To   string `json:"to"`
}

// Days handles POST /api/availability: per-date statuses for the
// picker.
func (h *Handler) Days(w http.ResponseWriter, r *http.Request) {
	var req daysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	from, err := time.Parse(dateFormat, req.From)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid from date")
		return
	}
	to, err := time.Parse(dateFormat, req.To)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid to date")
		return
	}
	if to.Before(from) {
		utils.WriteError(w, http.StatusBadRequest, "to must not be before from")
		return
	}

	statuses, err := h.Service.DayStatuses(from, to)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"days": statuses})
}

type probeRequest struct {
	Date string `json:"date"` // "2006-01-02"
	Time string `json:"time"` // "15:04"
}

// Probe handles POST /api/availability/probe: one time of day on one
// date.
func (h *Handler) Probe(w http.ResponseWriter, r *http.Request) {
	var req probeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid date")
		return
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid time")
		return
	}

	available, err := h.Service.ProbeTime(date, req.Time)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"available": available})
}
