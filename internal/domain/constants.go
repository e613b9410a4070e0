package domain

// Default policy values
const (
	DefaultSlotSizeMinutes        = 30
	DefaultMaxPerSlot             = 1
	DefaultBookingLeadTimeMinutes = 60 // 1 hour
	DefaultCancelCutoffMinutes    = 60 // 1 hour
)

// Business validation constants
const (
	MinSlotSizeMinutes = 5
	MaxSlotSizeMinutes = 240 // 4 hours

	MinPerSlot = 1
	MaxPerSlot = 100

	MinBookingLeadTimeMinutes = 0
	MaxBookingLeadTimeMinutes = 10080 // 1 week

	MinCancelCutoffMinutes = 0
	MaxCancelCutoffMinutes = 10080 // 1 week
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
