package get_revenue_report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hangarapp/hangar-booking/internal/api/handlers"
	"github.com/hangarapp/hangar-booking/internal/service/reports"
)

const (
	msgInvalidTenantID = "ID do hangar inválido"
	msgMissingPeriod   = "parâmetros from e to são obrigatórios, formato YYYY-MM-DD"
	msgInvalidPeriod   = "período inválido"
	msgNotFound        = "hangar não encontrado"
	msgInvalidFormat   = "formato de exportação desconhecido"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	service ReportsService
	logger  Logger
}

func NewHandler(service ReportsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/reports/revenue?from=YYYY-MM-DD&to=YYYY-MM-DD
//
// format=xlsx streams the report as a spreadsheet download instead of JSON.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	switch q.Get("format") {
	case "", "json":
		report, err := h.service.RevenueReport(r.Context(), tenantID, from, to)
		if err != nil {
			h.respondError(w, tenantID, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, report)

	case "xlsx":
		data, filename, err := h.service.ExportXLSX(r.Context(), tenantID, from, to)
		if err != nil {
			h.respondError(w, tenantID, err)
			return
		}
		h.logger.Info("GET /tenants/{id}/reports/revenue - Exported: tenant=%d file=%s", tenantID, filename)
		handlers.RespondAttachment(w, filename, xlsxContentType, data)

	default:
		handlers.RespondBadRequest(w, msgInvalidFormat)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, tenantID int64, err error) {
	switch {
	case errors.Is(err, reports.ErrTenantNotFound):
		h.logger.Warn("GET /tenants/{id}/reports/revenue - Tenant not found: tenant=%d", tenantID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, reports.ErrInvalidPeriod):
		handlers.RespondBadRequest(w, msgInvalidPeriod)

	default:
		h.logger.Error("GET /tenants/{id}/reports/revenue - Failed: tenant=%d error=%v", tenantID, err)
		handlers.RespondInternalError(w)
	}
}
