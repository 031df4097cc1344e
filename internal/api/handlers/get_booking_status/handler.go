package get_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hangarapp/hangar-booking/internal/api/handlers"
	"github.com/hangarapp/hangar-booking/internal/service/appointments"
	"github.com/hangarapp/hangar-booking/internal/service/appointments/models"
)

const (
	msgMissingRef = "referência do agendamento ausente"
	msgNotFound   = "agendamento não encontrado"
)

// BookingStatusResponse is the public status view. The ref is the lookup
// capability, so only display data is exposed.
type BookingStatusResponse struct {
	PublicRef   string  `json:"publicRef"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	ServiceName string  `json:"serviceName"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
}

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

// Handle GET /api/v1/bookings/{ref}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]
	if ref == "" {
		handlers.RespondBadRequest(w, msgMissingRef)
		return
	}

	appointment, err := h.service.GetByPublicRef(r.Context(), ref)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound),
			errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{ref} - Not found: ref=%q", ref)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{ref} - Failed: ref=%q error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromServiceResponse(appointment))
}

func fromServiceResponse(a *models.AppointmentResponse) *BookingStatusResponse {
	return &BookingStatusResponse{
		PublicRef:   a.PublicRef,
		Date:        a.Date,
		StartTime:   a.StartTime,
		ServiceName: a.ServiceName,
		Price:       a.Price,
		Status:      a.Status,
	}
}
