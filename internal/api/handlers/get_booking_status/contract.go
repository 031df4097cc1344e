package get_booking_status

import (
	"context"

	"github.com/hangarapp/hangar-booking/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetByPublicRef(ctx context.Context, ref string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
