package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarapp/hangar-booking/internal/domain"
	"github.com/hangarapp/hangar-booking/pkg/ptr"
	"github.com/hangarapp/hangar-booking/pkg/timeofday"
)

func scheduleConfig(rules []domain.OperatingRule, blocked ...domain.BlockedDate) *domain.ScheduleConfig {
	blockedMap := make(map[string]domain.BlockedDate, len(blocked))
	for _, b := range blocked {
		blockedMap[domain.DateKey(b.Date)] = b
	}
	return &domain.ScheduleConfig{
		Tenant: domain.Tenant{
			ID:                  1,
			SlotIntervalMinutes: 60,
			BoxCapacity:         1,
		},
		Rules:        domain.NewWeeklySchedule(rules),
		BlockedDates: blockedMap,
	}
}

func TestResolveDay(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	sunday := monday.AddDate(0, 0, 6)

	mondayOpen := domain.OperatingRule{
		DayOfWeek: 1,
		IsOpen:    true,
		OpenTime:  timeofday.New(8, 0),
		CloseTime: timeofday.New(18, 0),
	}
	sundayClosed := domain.OperatingRule{DayOfWeek: 0, IsOpen: false}

	t.Run("open weekday", func(t *testing.T) {
		cfg := scheduleConfig([]domain.OperatingRule{mondayOpen})
		assert.Equal(t, domain.DayOpen, ResolveDay(cfg, monday))
	})

	t.Run("no rule means closed", func(t *testing.T) {
		cfg := scheduleConfig([]domain.OperatingRule{mondayOpen})
		assert.Equal(t, domain.DayClosed, ResolveDay(cfg, tuesday))
	})

	t.Run("explicit closed rule", func(t *testing.T) {
		cfg := scheduleConfig([]domain.OperatingRule{sundayClosed})
		assert.Equal(t, domain.DayClosed, ResolveDay(cfg, sunday))
	})

	t.Run("blocked date overrides open rule", func(t *testing.T) {
		cfg := scheduleConfig(
			[]domain.OperatingRule{mondayOpen},
			domain.BlockedDate{Date: monday, Reason: ptr.Ptr("feriado")},
		)
		assert.Equal(t, domain.DayBlocked, ResolveDay(cfg, monday))
	})

	t.Run("blocked date on closed weekday stays closed", func(t *testing.T) {
		cfg := scheduleConfig(
			[]domain.OperatingRule{mondayOpen},
			domain.BlockedDate{Date: tuesday},
		)
		assert.Equal(t, domain.DayClosed, ResolveDay(cfg, tuesday))
	})

	// Christmas 2024 falls on a Wednesday; an open Wednesday rule must
	// still lose to the block entry.
	t.Run("christmas block", func(t *testing.T) {
		christmas := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
		wednesdayOpen := domain.OperatingRule{
			DayOfWeek: 3,
			IsOpen:    true,
			OpenTime:  timeofday.New(8, 0),
			CloseTime: timeofday.New(12, 0),
		}
		cfg := scheduleConfig(
			[]domain.OperatingRule{wednesdayOpen},
			domain.BlockedDate{Date: christmas, Reason: ptr.Ptr("natal")},
		)
		assert.Equal(t, domain.DayBlocked, ResolveDay(cfg, christmas))
	})
}

func TestIsPastDate(t *testing.T) {
	now := time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC)

	assert.True(t, IsPastDate(now.AddDate(0, 0, -1), now))
	assert.False(t, IsPastDate(now, now))
	assert.False(t, IsPastDate(now.AddDate(0, 0, 1), now))

	// Same day, earlier clock time is not "past": only whole days count.
	morning := time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC)
	assert.False(t, IsPastDate(morning, now))

	// Month and year boundaries go through calendar arithmetic.
	endOfYear := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)
	newYear := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsPastDate(endOfYear, newYear))
	assert.False(t, IsPastDate(newYear, endOfYear))
}

func TestGenerateSlots(t *testing.T) {
	t.Run("monday morning hour slots", func(t *testing.T) {
		slots, err := GenerateSlots(timeofday.New(8, 0), timeofday.New(12, 0), 60)
		require.NoError(t, err)
		assert.Equal(t, []string{"08:00", "09:00", "10:00", "11:00"}, FormatSlots(slots))
	})

	t.Run("interval not dividing the window", func(t *testing.T) {
		slots, err := GenerateSlots(timeofday.New(9, 0), timeofday.New(10, 30), 45)
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "09:45"}, FormatSlots(slots))
	})

	t.Run("all slots inside the window", func(t *testing.T) {
		open, close := timeofday.New(7, 15), timeofday.New(19, 40)
		slots, err := GenerateSlots(open, close, 30)
		require.NoError(t, err)
		require.NotEmpty(t, slots)
		for i, s := range slots {
			assert.False(t, s.Before(open))
			assert.True(t, s.Before(close))
			if i > 0 {
				assert.Equal(t, 30, s.Minutes()-slots[i-1].Minutes())
			}
		}
	})

	t.Run("inverted window yields empty sequence", func(t *testing.T) {
		slots, err := GenerateSlots(timeofday.New(18, 0), timeofday.New(8, 0), 60)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("zero width window yields empty sequence", func(t *testing.T) {
		slots, err := GenerateSlots(timeofday.New(8, 0), timeofday.New(8, 0), 60)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("non positive interval fails fast", func(t *testing.T) {
		_, err := GenerateSlots(timeofday.New(8, 0), timeofday.New(12, 0), 0)
		assert.ErrorIs(t, err, ErrInvalidInterval)

		_, err = GenerateSlots(timeofday.New(8, 0), timeofday.New(12, 0), -15)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("restartable", func(t *testing.T) {
		first, err := GenerateSlots(timeofday.New(8, 0), timeofday.New(18, 0), 90)
		require.NoError(t, err)
		second, err := GenerateSlots(timeofday.New(8, 0), timeofday.New(18, 0), 90)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestContainsSlot(t *testing.T) {
	slots, err := GenerateSlots(timeofday.New(8, 0), timeofday.New(12, 0), 60)
	require.NoError(t, err)

	assert.True(t, ContainsSlot(slots, timeofday.New(9, 0)))
	assert.False(t, ContainsSlot(slots, timeofday.New(9, 30)))
	assert.False(t, ContainsSlot(slots, timeofday.New(12, 0)))
}

func TestComputeOccupancy(t *testing.T) {
	slots, err := GenerateSlots(timeofday.New(8, 0), timeofday.New(12, 0), 60)
	require.NoError(t, err)

	appointments := []*domain.Appointment{
		{StartTime: timeofday.New(9, 0), Status: domain.StatusNew},
		{StartTime: timeofday.New(9, 0), Status: domain.StatusConfirmed},
		{StartTime: timeofday.New(10, 0), Status: domain.StatusCancelled},
		{StartTime: timeofday.New(11, 0), Status: domain.StatusInProgress},
	}

	occupancy := ComputeOccupancy(slots, appointments, 2)
	require.Len(t, occupancy, 4)

	nine := occupancy[timeofday.New(9, 0)]
	assert.Equal(t, 2, nine.Count)
	assert.True(t, nine.IsFull())

	// Cancelled appointments free their slot.
	ten := occupancy[timeofday.New(10, 0)]
	assert.Equal(t, 0, ten.Count)
	assert.False(t, ten.IsFull())

	eleven := occupancy[timeofday.New(11, 0)]
	assert.Equal(t, 1, eleven.Count)
	assert.False(t, eleven.IsFull())

	eight := occupancy[timeofday.New(8, 0)]
	assert.Equal(t, 0, eight.Count)
}

func TestOccupancyFullIffCountReachesCapacity(t *testing.T) {
	slot := timeofday.New(9, 0)
	for capacity := 1; capacity <= 4; capacity++ {
		for count := 0; count <= capacity+1; count++ {
			appointments := make([]*domain.Appointment, count)
			for i := range appointments {
				appointments[i] = &domain.Appointment{StartTime: slot, Status: domain.StatusNew}
			}
			occ := ComputeOccupancy([]timeofday.TimeOfDay{slot}, appointments, capacity)[slot]
			assert.Equal(t, count >= capacity, occ.IsFull(),
				"capacity=%d count=%d", capacity, count)
		}
	}
}

func TestCountAt(t *testing.T) {
	appointments := []*domain.Appointment{
		{StartTime: timeofday.New(9, 0), Status: domain.StatusNew},
		{StartTime: timeofday.New(9, 0), Status: domain.StatusCancelled},
		{StartTime: timeofday.New(10, 0), Status: domain.StatusConfirmed},
	}

	assert.Equal(t, 1, CountAt(appointments, timeofday.New(9, 0)))
	assert.Equal(t, 1, CountAt(appointments, timeofday.New(10, 0)))
	assert.Equal(t, 0, CountAt(appointments, timeofday.New(11, 0)))
}
