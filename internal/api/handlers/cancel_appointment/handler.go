package cancel_appointment

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hangarapp/hangar-booking/internal/api/handlers"
	"github.com/hangarapp/hangar-booking/internal/service/appointments"
	"github.com/hangarapp/hangar-booking/internal/service/appointments/models"
)

const (
	msgInvalidID          = "ID inválido"
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgNotFound           = "agendamento não encontrado"
	msgCannotCancel       = "agendamento já encerrado, não pode ser cancelado"
	msgInvalidReason      = "motivo de cancelamento inválido"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/tenants/{tenantId}/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID, err1 := strconv.ParseInt(vars["tenantId"], 10, 64)
	appointmentID, err2 := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err1 != nil || err2 != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	// The body is optional: cancelling without a reason is fine.
	var req models.CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), tenantID, appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Not found: tenant=%d id=%d",
				tenantID, appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrCannotCancel):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Cannot cancel: id=%d", appointmentID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCannotCancel)

		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReason)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed: tenant=%d id=%d error=%v",
				tenantID, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Cancelled: id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
