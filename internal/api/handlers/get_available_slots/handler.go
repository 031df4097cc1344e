package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hangarapp/hangar-booking/internal/api/handlers"
	"github.com/hangarapp/hangar-booking/internal/domain"
	getAvailableSlots "github.com/hangarapp/hangar-booking/internal/usecase/get_available_slots"
)

const (
	msgMissingSlug   = "identificador do hangar ausente"
	msgMissingDate   = "parâmetro date é obrigatório, formato YYYY-MM-DD"
	msgInvalidDate   = "data inválida, formato esperado YYYY-MM-DD"
	msgPastDate      = "não é possível consultar datas passadas"
	msgNotFound      = "hangar não encontrado"
	msgInvalidConfig = "configuração de agenda do hangar inválida"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/hangars/{slug}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if slug == "" {
		handlers.RespondBadRequest(w, msgMissingSlug)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /hangars/{slug}/available-slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Slug: slug,
		Date: date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTenantNotFound):
			h.logger.Warn("GET /hangars/{slug}/available-slots - Hangar not found: slug=%q", slug)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /hangars/{slug}/available-slots - Past date: slug=%q date=%s", slug, dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidConfig):
			h.logger.Error("GET /hangars/{slug}/available-slots - Invalid tenant config: slug=%q", slug)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidConfig)

		default:
			h.logger.Error("GET /hangars/{slug}/available-slots - Failed: slug=%q date=%s error=%v",
				slug, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
