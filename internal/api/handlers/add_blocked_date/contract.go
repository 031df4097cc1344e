package add_blocked_date

import (
	"context"

	"github.com/hangarapp/hangar-booking/internal/service/schedule/models"
)

type ScheduleService interface {
	AddBlockedDate(ctx context.Context, tenantID int64, req *models.AddBlockedDateRequest) (*models.BlockedDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
