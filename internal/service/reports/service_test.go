package reports

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hangarapp/hangar-booking/internal/domain"
	appointmentRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/appointment"
	tenantRepo "github.com/hangarapp/hangar-booking/internal/infra/storage/tenant"
)

type fakeAppointmentRepo struct {
	rows []appointmentRepo.RevenueRow
	err  error
}

func (f *fakeAppointmentRepo) RevenueByDay(_ context.Context, _ int64, _, _ string) ([]appointmentRepo.RevenueRow, error) {
	return f.rows, f.err
}

type fakeTenantRepo struct {
	tenant *domain.Tenant
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id int64) (*domain.Tenant, error) {
	if f.tenant == nil || f.tenant.ID != id {
		return nil, tenantRepo.ErrTenantNotFound
	}
	return f.tenant, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testRows() []appointmentRepo.RevenueRow {
	return []appointmentRepo.RevenueRow{
		{Date: "2025-03-03", ServiceName: "Lavagem completa", Count: 3, Total: 360},
		{Date: "2025-03-03", ServiceName: "Polimento", Count: 1, Total: 450},
		{Date: "2025-03-04", ServiceName: "Lavagem completa", Count: 2, Total: 240},
	}
}

func newTestService(rows []appointmentRepo.RevenueRow) *Service {
	return NewService(
		&fakeAppointmentRepo{rows: rows},
		&fakeTenantRepo{tenant: &domain.Tenant{ID: 1, Slug: "hangar-do-joao"}},
		nopLogger{},
	)
}

func TestRevenueReport_FoldsRowsIntoDays(t *testing.T) {
	svc := newTestService(testRows())

	report, err := svc.RevenueReport(context.Background(), 1, "2025-03-01", "2025-03-31")
	require.NoError(t, err)

	assert.Equal(t, 6, report.TotalCount)
	assert.InDelta(t, 1050.0, report.Total, 0.001)
	require.Len(t, report.Days, 2)

	first := report.Days[0]
	assert.Equal(t, "2025-03-03", first.Date)
	assert.Equal(t, 4, first.Count)
	assert.InDelta(t, 810.0, first.Total, 0.001)
	require.Len(t, first.Services, 2)

	second := report.Days[1]
	assert.Equal(t, "2025-03-04", second.Date)
	assert.Equal(t, 2, second.Count)
}

func TestRevenueReport_EmptyPeriod(t *testing.T) {
	svc := newTestService(nil)

	report, err := svc.RevenueReport(context.Background(), 1, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Zero(t, report.TotalCount)
	assert.Empty(t, report.Days)
}

func TestRevenueReport_InvalidPeriod(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.RevenueReport(context.Background(), 1, "03/01/2025", "2025-03-31")
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = svc.RevenueReport(context.Background(), 1, "2025-03-31", "2025-03-01")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestRevenueReport_TenantNotFound(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.RevenueReport(context.Background(), 42, "2025-03-01", "2025-03-31")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestExportXLSX(t *testing.T) {
	svc := newTestService(testRows())

	data, filename, err := svc.ExportXLSX(context.Background(), 1, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Equal(t, "faturamento_hangar-do-joao_2025-03-01_2025-03-31.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Faturamento")
	require.NoError(t, err)
	// Header + 3 service lines + total line.
	require.Len(t, rows, 5)
	assert.Equal(t, "Data", rows[0][0])
	assert.Equal(t, "2025-03-03", rows[1][0])
	assert.Equal(t, "Total", rows[4][0])
}
