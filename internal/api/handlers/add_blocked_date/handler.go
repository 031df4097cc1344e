package add_blocked_date

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hangarapp/hangar-booking/internal/api/handlers"
	"github.com/hangarapp/hangar-booking/internal/service/schedule"
	"github.com/hangarapp/hangar-booking/internal/service/schedule/models"
)

const (
	msgInvalidTenantID    = "ID do hangar inválido"
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgNotFound           = "hangar não encontrado"
	msgInvalidDate        = "data inválida, formato esperado YYYY-MM-DD"
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

// Handle POST /api/v1/tenants/{tenantId}/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req models.AddBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddBlockedDate(r.Context(), tenantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTenantNotFound):
			h.logger.Warn("POST /tenants/{id}/blocked-dates - Tenant not found: tenant=%d", tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("POST /tenants/{id}/blocked-dates - Failed: tenant=%d error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/{id}/blocked-dates - Blocked: tenant=%d date=%s", tenantID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
