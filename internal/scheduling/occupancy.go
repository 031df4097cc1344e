package scheduling

import (
	"github.com/hangarapp/hangar-booking/internal/domain"
	"github.com/hangarapp/hangar-booking/pkg/timeofday"
)

// ComputeOccupancy counts, for each generated slot, the appointments that
// start at exactly that time and still hold their slot (anything not
// cancelled). Every slot appears in the result, full ones included; the
// booking UI disables full slots rather than hiding them.
//
// The appointments slice is expected to be pre-filtered to the slot's date;
// the counter does not look at dates.
func ComputeOccupancy(
	slots []timeofday.TimeOfDay,
	appointments []*domain.Appointment,
	boxCapacity int,
) map[timeofday.TimeOfDay]domain.SlotOccupancy {
	counts := make(map[timeofday.TimeOfDay]int, len(slots))
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		counts[a.StartTime]++
	}

	occupancy := make(map[timeofday.TimeOfDay]domain.SlotOccupancy, len(slots))
	for _, slot := range slots {
		occupancy[slot] = domain.SlotOccupancy{
			StartTime: slot,
			Count:     counts[slot],
			Capacity:  boxCapacity,
		}
	}
	return occupancy
}

// CountAt returns the number of active appointments starting at exactly the
// given time. Used by the booking commit for its capacity precondition.
func CountAt(appointments []*domain.Appointment, at timeofday.TimeOfDay) int {
	count := 0
	for _, a := range appointments {
		if a.IsActive() && a.StartTime == at {
			count++
		}
	}
	return count
}
