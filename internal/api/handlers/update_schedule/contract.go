package update_schedule

import (
	"context"

	"github.com/hangarapp/hangar-booking/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateSchedule(ctx context.Context, tenantID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
