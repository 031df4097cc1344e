package domain

// Default tenant configuration values
const (
	DefaultSlotIntervalMinutes = 60
	DefaultBoxCapacity         = 1
)

// Business validation constants
const (
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 480 // 8 hours
	MinBoxCapacity         = 1
	MaxBoxCapacity         = 50
	MaxObservationLength   = 500
	MaxReasonLength        = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
