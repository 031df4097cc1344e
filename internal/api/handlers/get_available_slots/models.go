package get_available_slots

import (
	"github.com/hangarapp/hangar-booking/internal/domain"
	getAvailableSlots "github.com/hangarapp/hangar-booking/internal/usecase/get_available_slots"
)

// SlotResponse is one bookable time of the day.
type SlotResponse struct {
	StartTime string `json:"startTime"` // "09:00"
	Occupied  int    `json:"occupied"`
	Capacity  int    `json:"capacity"`
	IsFull    bool   `json:"isFull"`
}

// AvailableSlotsResponse is the availability view of one day.
type AvailableSlotsResponse struct {
	Date      string         `json:"date"` // "2025-03-03"
	DayStatus string         `json:"dayStatus"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse converts the use case result into the HTTP model.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		DayStatus: string(resp.DayStatus),
		Slots:     make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime: s.StartTime.String(),
			Occupied:  s.Count,
			Capacity:  s.Capacity,
			IsFull:    s.IsFull,
		})
	}
	return out
}
