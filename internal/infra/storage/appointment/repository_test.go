package appointment

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarapp/hangar-booking/internal/domain"
	"github.com/hangarapp/hangar-booking/pkg/ptr"
	"github.com/hangarapp/hangar-booking/pkg/timeofday"
)

// A booking may carry no vehicle and no observation; the corresponding
// columns are nullable and must come back as nil pointers, not as a scan
// failure or empty strings.
func TestScanAppointment_NullOptionalColumns(t *testing.T) {
	scan := func(dest ...interface{}) error {
		*(dest[0].(*int64)) = 42
		*(dest[1].(*string)) = "5f2c1f0e-bc6a-4c24-8a9d-2c4a7b9d1e00"
		*(dest[2].(*int64)) = 1
		*(dest[3].(*int64)) = 10
		*(dest[4].(**int64)) = nil // vehicle_id NULL
		*(dest[5].(*int64)) = 5
		*(dest[6].(*time.Time)) = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
		*(dest[7].(*timeofday.TimeOfDay)) = timeofday.New(9, 0)
		*(dest[8].(*int)) = 90
		*(dest[9].(*float64)) = 120
		*(dest[10].(*domain.AppointmentStatus)) = domain.StatusNew
		*(dest[11].(**string)) = nil // observation NULL
		*(dest[12].(*string)) = "Lavagem completa"
		*(dest[13].(*string)) = "Maria Silva"
		*(dest[14].(*string)) = "+5511999990000"
		*(dest[15].(**string)) = nil // vehicle_brand NULL
		*(dest[16].(**string)) = nil // vehicle_model NULL
		*(dest[17].(**string)) = nil // vehicle_plate NULL
		*(dest[18].(**string)) = nil // cancellation_reason NULL
		*(dest[19].(**time.Time)) = nil
		*(dest[20].(*sql.NullTime)) = sql.NullTime{Time: time.Now(), Valid: true}
		*(dest[21].(*sql.NullTime)) = sql.NullTime{Time: time.Now(), Valid: true}
		return nil
	}

	a, err := scanAppointment(scan)
	require.NoError(t, err)

	assert.Equal(t, int64(42), a.ID)
	assert.Nil(t, a.VehicleID)
	assert.Nil(t, a.Observation)
	assert.Nil(t, a.VehicleBrand)
	assert.Nil(t, a.VehicleModel)
	assert.Nil(t, a.VehiclePlate)
	assert.Nil(t, a.CancellationReason)
	assert.Nil(t, a.CancelledAt)
	assert.Equal(t, domain.StatusNew, a.Status)
}

func TestScanAppointment_AllColumns(t *testing.T) {
	cancelledAt := time.Date(2025, 3, 2, 18, 30, 0, 0, time.UTC)

	scan := func(dest ...interface{}) error {
		*(dest[0].(*int64)) = 7
		*(dest[1].(*string)) = "0b6e4a21-9c1d-4f2e-b6a5-8d3c2e1f0a99"
		*(dest[2].(*int64)) = 1
		*(dest[3].(*int64)) = 10
		*(dest[4].(**int64)) = ptr.Ptr(int64(20))
		*(dest[5].(*int64)) = 5
		*(dest[6].(*time.Time)) = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
		*(dest[7].(*timeofday.TimeOfDay)) = timeofday.New(10, 0)
		*(dest[8].(*int)) = 90
		*(dest[9].(*float64)) = 120
		*(dest[10].(*domain.AppointmentStatus)) = domain.StatusCancelled
		*(dest[11].(**string)) = ptr.Ptr("cliente pediu cera extra")
		*(dest[12].(*string)) = "Lavagem completa"
		*(dest[13].(*string)) = "Maria Silva"
		*(dest[14].(*string)) = "+5511999990000"
		*(dest[15].(**string)) = ptr.Ptr("Fiat")
		*(dest[16].(**string)) = ptr.Ptr("Pulse")
		*(dest[17].(**string)) = ptr.Ptr("ABC1D23")
		*(dest[18].(**string)) = ptr.Ptr("cliente desistiu")
		*(dest[19].(**time.Time)) = &cancelledAt
		*(dest[20].(*sql.NullTime)) = sql.NullTime{Time: time.Now(), Valid: true}
		*(dest[21].(*sql.NullTime)) = sql.NullTime{Time: time.Now(), Valid: true}
		return nil
	}

	a, err := scanAppointment(scan)
	require.NoError(t, err)

	require.NotNil(t, a.VehicleID)
	assert.Equal(t, int64(20), *a.VehicleID)
	require.NotNil(t, a.Observation)
	assert.Equal(t, "cliente pediu cera extra", *a.Observation)
	require.NotNil(t, a.VehicleBrand)
	assert.Equal(t, "Fiat", *a.VehicleBrand)
	require.NotNil(t, a.CancellationReason)
	assert.Equal(t, "cliente desistiu", *a.CancellationReason)
	require.NotNil(t, a.CancelledAt)
	assert.True(t, a.CancelledAt.Equal(cancelledAt))
}
