package cancel_appointment

import (
	"context"

	"github.com/hangarapp/hangar-booking/internal/service/appointments/models"
)

type AppointmentsService interface {
	Cancel(ctx context.Context, tenantID, id int64, req *models.CancelRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
