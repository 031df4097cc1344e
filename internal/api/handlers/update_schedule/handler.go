package update_schedule

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
	msgInvalidRule        = "regra de funcionamento inválida"
	msgInvalidConfig      = "intervalo de slots ou capacidade fora dos limites"
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

// Handle PUT /api/v1/tenants/{tenantId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tenants/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSchedule(r.Context(), tenantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTenantNotFound):
			h.logger.Warn("PUT /tenants/{id}/schedule - Tenant not found: tenant=%d", tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrInvalidRule):
			h.logger.Warn("PUT /tenants/{id}/schedule - Invalid rule: tenant=%d error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, schedule.ErrInvalidConfig):
			h.logger.Warn("PUT /tenants/{id}/schedule - Invalid config: tenant=%d error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /tenants/{id}/schedule - Failed: tenant=%d error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tenants/{id}/schedule - Updated: tenant=%d", tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
