package update_booking_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/policies"
	"github.com/m04kA/SMC-AppointmentService/internal/service/policies/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgBusinessNotFound   = "бизнес не найден"
	msgAccessDenied       = "нет прав на изменение политики бронирования"
)

// UpsertPolicyRequest HTTP request model
type UpsertPolicyRequest struct {
	ProfessionalID          *int64 `json:"professionalId,omitempty"`
	ServiceID               *int64 `json:"serviceId,omitempty"`
	SlotGranularityMinutes  int    `json:"slotGranularityMinutes"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
	LateCancelNoticeMinutes int    `json:"lateCancelNoticeMinutes"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"`
}

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/booking-policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/booking-policy - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req UpsertPolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/booking-policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), &models.UpsertPolicyRequest{
		Session:                 session,
		BusinessID:              businessID,
		ProfessionalID:          req.ProfessionalID,
		ServiceID:               req.ServiceID,
		SlotGranularityMinutes:  req.SlotGranularityMinutes,
		MinBookingNoticeMinutes: req.MinBookingNoticeMinutes,
		LateCancelNoticeMinutes: req.LateCancelNoticeMinutes,
		AdvanceBookingDays:      req.AdvanceBookingDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, policies.ErrBusinessNotFound):
			h.logger.Warn("PUT /businesses/{id}/booking-policy - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, policies.ErrAccessDenied):
			h.logger.Warn("PUT /businesses/{id}/booking-policy - Access denied: business_id=%d, user_id=%d",
				businessID, session.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, policies.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /businesses/{id}/booking-policy - Failed to upsert policy: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/booking-policy - Policy saved: business_id=%d, user_id=%d",
		businessID, session.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
