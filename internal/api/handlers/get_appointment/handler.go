package get_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hangarapp/hangar-booking/internal/api/handlers"
	"github.com/hangarapp/hangar-booking/internal/service/appointments"
)

const (
	msgInvalidID = "ID inválido"
	msgNotFound  = "agendamento não encontrado"
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

// Handle GET /api/v1/tenants/{tenantId}/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID, err1 := strconv.ParseInt(vars["tenantId"], 10, 64)
	appointmentID, err2 := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err1 != nil || err2 != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	appointment, err := h.service.GetByID(r.Context(), tenantID, appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /tenants/{id}/appointments/{id} - Not found: tenant=%d id=%d",
				tenantID, appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidID)

		default:
			h.logger.Error("GET /tenants/{id}/appointments/{id} - Failed: tenant=%d id=%d error=%v",
				tenantID, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, appointment)
}
