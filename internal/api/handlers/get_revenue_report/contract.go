package get_revenue_report

import (
	"context"

	"github.com/hangarapp/hangar-booking/internal/service/reports/models"
)

type ReportsService interface {
	RevenueReport(ctx context.Context, tenantID int64, from, to string) (*models.RevenueReportResponse, error)
	ExportXLSX(ctx context.Context, tenantID int64, from, to string) ([]byte, string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
