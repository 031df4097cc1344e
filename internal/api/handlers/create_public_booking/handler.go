package create_public_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hangarapp/hangar-booking/internal/api/handlers"
	createBooking "github.com/hangarapp/hangar-booking/internal/usecase/create_booking"
)

const (
	msgMissingSlug        = "identificador do hangar ausente"
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidDateTime    = "data ou horário inválido, formatos esperados YYYY-MM-DD e HH:MM"
	msgTenantNotFound     = "hangar não encontrado"
	msgServiceNotFound    = "serviço não encontrado"
	msgServiceInactive    = "serviço indisponível para agendamento"
	msgPastDate           = "não é possível agendar em datas passadas"
	msgClosedDay          = "o hangar está fechado na data escolhida"
	msgInvalidSlot        = "horário fora da grade de atendimento"
	msgSlotFull           = "horário lotado, escolha outro"
	msgInvalidInput       = "dados do agendamento inválidos"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/hangars/{slug}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if slug == "" {
		handlers.RespondBadRequest(w, msgMissingSlug)
		return
	}

	var req PublicBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /hangars/{slug}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(slug)
	if err != nil {
		h.logger.Warn("POST /hangars/{slug}/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /hangars/{slug}/bookings - Slot full: slug=%q date=%s time=%s",
				slug, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrTenantNotFound):
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgServiceInactive)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createBooking.ErrClosedDay):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgClosedDay)

		case errors.Is(err, createBooking.ErrInvalidSlot):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /hangars/{slug}/bookings - Failed: slug=%q error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /hangars/{slug}/bookings - Booking created: ref=%s slug=%q",
		result.PublicRef, slug)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
