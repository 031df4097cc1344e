package update_appointment_status

import (
	"context"

	"github.com/hangarapp/hangar-booking/internal/service/appointments/models"
)

type AppointmentsService interface {
	TransitionStatus(ctx context.Context, tenantID, id int64, status string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
