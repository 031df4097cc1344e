package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hangarapp/hangar-booking/internal/domain"
	tenantRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/tenant"
	"github.com/hangarapp/hangar-booking/internal/service/reports/models"
)

// Service builds revenue reports over completed appointments and exports
// them as spreadsheets for the tenant's bookkeeping.
type Service struct {
	appointmentRepo AppointmentRepository
	tenantRepo      TenantRepository
	logger          Logger
}

// NewService creates the reports service.
func NewService(appointmentRepo AppointmentRepository, tenantRepo TenantRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		tenantRepo:      tenantRepo,
		logger:          logger,
	}
}

// RevenueReport aggregates completed appointments per day and service over
// the inclusive period.
func (s *Service) RevenueReport(ctx context.Context, tenantID int64, from, to string) (*models.RevenueReportResponse, error) {
	if _, err := s.getTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	if err := validatePeriod(from, to); err != nil {
		s.logger.Warn("RevenueReport: invalid period [%s, %s] for tenant=%d: %v", from, to, tenantID, err)
		return nil, err
	}

	rows, err := s.appointmentRepo.RevenueByDay(ctx, tenantID, from, to)
	if err != nil {
		s.logger.Error("RevenueReport: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: RevenueReport: %v", ErrInternal, err)
	}

	resp := &models.RevenueReportResponse{
		TenantID: tenantID,
		From:     from,
		To:       to,
		Days:     []models.DayRevenue{},
	}

	// Rows arrive ordered by day then service name; fold them into
	// per-day buckets.
	for _, row := range rows {
		if len(resp.Days) == 0 || resp.Days[len(resp.Days)-1].Date != row.Date {
			resp.Days = append(resp.Days, models.DayRevenue{Date: row.Date})
		}
		day := &resp.Days[len(resp.Days)-1]
		day.Services = append(day.Services, models.ServiceLine{
			ServiceName: row.ServiceName,
			Count:       row.Count,
			Total:       row.Total,
		})
		day.Count += row.Count
		day.Total += row.Total
		resp.TotalCount += row.Count
		resp.Total += row.Total
	}

	s.logger.Info("RevenueReport: tenant=%d period=[%s, %s] days=%d total=%.2f",
		tenantID, from, to, len(resp.Days), resp.Total)
	return resp, nil
}

// ExportXLSX renders the revenue report as an xlsx workbook: one line per
// day and service, a grand total at the bottom. Returns the file bytes and
// a suggested filename.
func (s *Service) ExportXLSX(ctx context.Context, tenantID int64, from, to string) ([]byte, string, error) {
	tenant, err := s.getTenant(ctx, tenantID)
	if err != nil {
		return nil, "", err
	}

	report, err := s.RevenueReport(ctx, tenantID, from, to)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Faturamento"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Data", "Serviço", "Atendimentos", "Total (R$)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "D1", bold)
	}

	rowIdx := 2
	for _, day := range report.Days {
		for _, line := range day.Services {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), day.Date)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", rowIdx), line.ServiceName)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", rowIdx), line.Count)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", rowIdx), line.Total)
			rowIdx++
		}
	}

	f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", rowIdx), report.TotalCount)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", rowIdx), report.Total)
	if err == nil {
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowIdx), fmt.Sprintf("D%d", rowIdx), bold)
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "D", 14)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		s.logger.Error("ExportXLSX: failed to render workbook for tenant=%d: %v", tenantID, err)
		return nil, "", fmt.Errorf("%w: ExportXLSX: %v", ErrInternal, err)
	}

	filename := fmt.Sprintf("faturamento_%s_%s_%s.xlsx", tenant.Slug, from, to)
	s.logger.Info("ExportXLSX: tenant=%d file=%s bytes=%d", tenantID, filename, buf.Len())
	return buf.Bytes(), filename, nil
}

func validatePeriod(from, to string) error {
	start, err := time.Parse(domain.DateFormat, from)
	if err != nil {
		return fmt.Errorf("%w: from %q", ErrInvalidPeriod, from)
	}
	end, err := time.Parse(domain.DateFormat, to)
	if err != nil {
		return fmt.Errorf("%w: to %q", ErrInvalidPeriod, to)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: to before from", ErrInvalidPeriod)
	}
	return nil
}

func (s *Service) getTenant(ctx context.Context, tenantID int64) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("reports: tenant id=%d not found", tenantID)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("reports: failed to get tenant id=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: get tenant: %v", ErrInternal, err)
	}
	return tenant, nil
}
