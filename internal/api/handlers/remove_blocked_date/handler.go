package remove_blocked_date

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hangarapp/hangar-booking/internal/api/handlers"
	"github.com/hangarapp/hangar-booking/internal/service/schedule"
)

const (
	msgInvalidTenantID = "ID do hangar inválido"
	msgInvalidDate     = "data inválida, formato esperado YYYY-MM-DD"
	msgTenantNotFound  = "hangar não encontrado"
	msgNotFound        = "data bloqueada não encontrada"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/tenants/{tenantId}/blocked-dates/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}
	date := vars["date"]

	if err := h.service.RemoveBlockedDate(r.Context(), tenantID, date); err != nil {
		switch {
		case errors.Is(err, schedule.ErrTenantNotFound):
			h.logger.Warn("DELETE /tenants/{id}/blocked-dates/{date} - Tenant not found: tenant=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, schedule.ErrBlockedDateNotFound):
			h.logger.Warn("DELETE /tenants/{id}/blocked-dates/{date} - Not blocked: tenant=%d date=%s",
				tenantID, date)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("DELETE /tenants/{id}/blocked-dates/{date} - Failed: tenant=%d date=%s error=%v",
				tenantID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /tenants/{id}/blocked-dates/{date} - Removed: tenant=%d date=%s", tenantID, date)
	w.WriteHeader(http.StatusNoContent)
}
