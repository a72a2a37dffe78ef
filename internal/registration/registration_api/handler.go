package registration_api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"sciencehub-backend/internal/auth"
	"sciencehub-backend/internal/logger"
	"sciencehub-backend/internal/notify"
	"sciencehub-backend/internal/registration"
	"sciencehub-backend/internal/registration/qr"
	"sciencehub-backend/internal/utils"
)

const (
	minAdults   = 1
	maxAdults   = 10
	minChildren = 0
	maxChildren = 10
)

type Handler struct {
	Service     *registration.Service
	Notifier    *notify.Notifier
	QRGenerator *qr.Generator
	Logger      *logger.Logger
}

func NewHandler(service *registration.Service, notifier *notify.Notifier, qrGen *qr.Generator, log *logger.Logger) *Handler {
	return &Handler{
		Service:     service,
		Notifier:    notifier,
		QRGenerator: qrGen,
		Logger:      log,
	}
}

type registerRequest struct {
	EventID          string `json:"eventId"`
	RegistrationData struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Comment  string `json:"comment"`
		Adults   int    `json:"adults"`
		Children int    `json:"children"`
	} `json:"registrationData"`
}

type registerResponse struct {
	Success        bool   `json:"success"`
	RegistrationID string `json:"registrationId"`
	QRCode         string `json:"qr_code,omitempty"`
}

// RegisterEvent handles POST /api/register-event.
func (h *Handler) RegisterEvent(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.EventID == "" {
		utils.WriteError(w, http.StatusBadRequest, "eventId is required")
		return
	}
	if strings.TrimSpace(req.RegistrationData.Name) == "" {
		utils.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}
	if strings.TrimSpace(req.RegistrationData.Email) == "" {
		utils.WriteError(w, http.StatusBadRequest, "email is required")
		return
	}

	svcReq := registration.Request{
		Name:     req.RegistrationData.Name,
		Email:    req.RegistrationData.Email,
		Phone:    req.RegistrationData.Phone,
		Comment:  req.RegistrationData.Comment,
		Adults:   clamp(req.RegistrationData.Adults, minAdults, maxAdults),
		Children: clamp(req.RegistrationData.Children, minChildren, maxChildren),
	}

	reg, err := h.Service.Register(req.EventID, svcReq)
	if err != nil {
		switch {
		case errors.Is(err, registration.ErrEventNotFound):
			utils.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, registration.ErrCapacityExceeded):
			utils.WriteError(w, http.StatusConflict, err.Error())
		case errors.Is(err, registration.ErrRegistrationBusy):
			utils.WriteError(w, http.StatusConflict, err.Error())
		default:
			utils.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	resp := registerResponse{Success: true, RegistrationID: reg.ID}

	if h.QRGenerator != nil {
		png, err := h.QRGenerator.GenerateConfirmation(req.EventID, reg.ID)
		if err != nil {
			h.Logger.Warn("REGISTER", fmt.Sprintf("failed to generate confirmation QR: %v", err))
		} else {
			resp.QRCode = base64.StdEncoding.EncodeToString(png)
		}
	}

	// Notification never blocks the response.
	go h.Notifier.Send(fmt.Sprintf(
		"New registration for event %s: %s (%d adults, %d children, total %.2f)",
		req.EventID, reg.Name, reg.Adults, reg.Children, reg.Total))

	utils.WriteJSON(w, http.StatusOK, resp)
}

type cancelRequest struct {
	EventID        string `json:"eventId"`
	RegistrationID string `json:"registrationId"`
}

// CancelRegistration handles POST /api/cancel-registration (admin).
// The entry is flagged inactive and the counts recomputed; nothing is
// removed from the list.
func (h *Handler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.EventID == "" || req.RegistrationID == "" {
		utils.WriteError(w, http.StatusBadRequest, "eventId and registrationId are required")
		return
	}

	err := h.Service.CancelRegistration(req.EventID, req.RegistrationID)
	if err != nil {
		switch {
		case errors.Is(err, registration.ErrEventNotFound):
			utils.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, registration.ErrRegistrationNotFound):
			utils.WriteError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, registration.ErrRegistrationBusy):
			utils.WriteError(w, http.StatusConflict, err.Error())
		default:
			utils.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.Logger.LogRegistration("CANCEL", req.RegistrationID,
		fmt.Sprintf("event %s, by %s", req.EventID, auth.Subject(r.Context())))

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
