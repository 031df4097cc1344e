package remove_blocked_date

import "context"

type ScheduleService interface {
	RemoveBlockedDate(ctx context.Context, tenantID int64, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
