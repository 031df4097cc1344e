package list_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/hangarapp/hangar-booking/internal/api/handlers"
	"github.com/hangarapp/hangar-booking/internal/domain"
	"github.com/hangarapp/hangar-booking/internal/service/appointments"
	"github.com/hangarapp/hangar-booking/internal/service/appointments/models"
)

const (
	msgInvalidTenantID = "ID do hangar inválido"
	msgInvalidDate     = "data inválida, formato esperado YYYY-MM-DD"
	msgInvalidStatus   = "status inválido"
	msgInvalidFilter   = "combinação de filtros inválida"
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

// Handle GET /api/v1/tenants/{tenantId}/appointments
//
// Query parameters: date, startDate, endDate (YYYY-MM-DD), status,
// includeInactive.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	req := &models.ListRequest{TenantID: tenantID}
	q := r.URL.Query()

	for param, dst := range map[string]**time.Time{
		"date":      &req.Date,
		"startDate": &req.StartDate,
		"endDate":   &req.EndDate,
	} {
		if value := q.Get(param); value != "" {
			parsed, err := time.Parse(domain.DateFormat, value)
			if err != nil {
				h.logger.Warn("GET /tenants/{id}/appointments - Invalid %s=%q", param, value)
				handlers.RespondBadRequest(w, msgInvalidDate)
				return
			}
			*dst = &parsed
		}
	}
	if status := q.Get("status"); status != "" {
		req.Status = &status
	}
	req.IncludeInactive = q.Get("includeInactive") == "true"

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /tenants/{id}/appointments - Failed: tenant=%d error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
