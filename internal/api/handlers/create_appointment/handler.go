package create_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hangarapp/hangar-booking/internal/api/handlers"
	createBooking "github.com/hangarapp/hangar-booking/internal/usecase/create_booking"
)

const (
	msgInvalidTenantID    = "ID do hangar inválido"
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidDateTime    = "data ou horário inválido, formatos esperados YYYY-MM-DD e HH:MM"
	msgTenantNotFound     = "hangar não encontrado"
	msgServiceNotFound    = "serviço não encontrado"
	msgServiceInactive    = "serviço indisponível para agendamento"
	msgCustomerNotFound   = "cliente não encontrado"
	msgVehicleNotFound    = "veículo não encontrado"
	msgVehicleNotOwned    = "veículo não pertence ao cliente informado"
	msgPastDate           = "não é possível agendar em datas passadas"
	msgClosedDay          = "o hangar está fechado na data escolhida"
	msgInvalidSlot        = "horário fora da grade de atendimento"
	msgSlotFull           = "horário lotado, escolha outro"
	msgInvalidConfig      = "configuração de agenda do hangar inválida"
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

// Handle POST /api/v1/tenants/{tenantId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, tenantID, err)
		return
	}

	h.logger.Info("POST /tenants/{id}/appointments - Appointment created: id=%d tenant=%d",
		result.ID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, tenantID int64, err error) {
	switch {
	case errors.Is(err, createBooking.ErrSlotFull):
		h.logger.Warn("POST /tenants/{id}/appointments - Slot full: tenant=%d", tenantID)
		handlers.RespondConflict(w, msgSlotFull)

	case errors.Is(err, createBooking.ErrTenantNotFound):
		handlers.RespondNotFound(w, msgTenantNotFound)

	case errors.Is(err, createBooking.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createBooking.ErrServiceInactive):
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgServiceInactive)

	case errors.Is(err, createBooking.ErrCustomerNotFound):
		handlers.RespondNotFound(w, msgCustomerNotFound)

	case errors.Is(err, createBooking.ErrVehicleNotFound):
		handlers.RespondNotFound(w, msgVehicleNotFound)

	case errors.Is(err, createBooking.ErrVehicleNotOwned):
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgVehicleNotOwned)

	case errors.Is(err, createBooking.ErrInvalidDate):
		handlers.RespondBadRequest(w, msgPastDate)

	case errors.Is(err, createBooking.ErrClosedDay):
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgClosedDay)

	case errors.Is(err, createBooking.ErrInvalidSlot):
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidSlot)

	case errors.Is(err, createBooking.ErrInvalidConfig):
		h.logger.Error("POST /tenants/{id}/appointments - Invalid tenant config: tenant=%d", tenantID)
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidConfig)

	case errors.Is(err, createBooking.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("POST /tenants/{id}/appointments - Failed: tenant=%d error=%v", tenantID, err)
		handlers.RespondInternalError(w)
	}
}
