package get_hangar_profile

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hangarapp/hangar-booking/internal/api/handlers"
	"github.com/hangarapp/hangar-booking/internal/service/tenants"
)

const (
	msgMissingSlug = "identificador do hangar ausente"
	msgNotFound    = "hangar não encontrado"
)

type Handler struct {
	service TenantsService
	logger  Logger
}

func NewHandler(service TenantsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/hangars/{slug}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if slug == "" {
		handlers.RespondBadRequest(w, msgMissingSlug)
		return
	}

	profile, err := h.service.GetPublicProfile(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, tenants.ErrTenantNotFound):
			h.logger.Warn("GET /hangars/{slug} - Hangar not found: slug=%q", slug)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /hangars/{slug} - Failed to get profile: slug=%q, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, profile)
}
