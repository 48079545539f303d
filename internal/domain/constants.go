package domain

// Slot duration bounds. Anything outside is a broken catalog entry or a
// typo in an explicit override, not a bookable service.
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
)
