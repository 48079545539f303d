package domain

import (
	"fmt"
	"sort"
)

// BookableSlot is a fixed-duration window offered to clients, cut from a free
// interval. Derived and ephemeral: recomputed on every input change.
type BookableSlot struct {
	Interval        TimeInterval
	DurationMinutes int
}

// SliceSlots chops each free interval into consecutive slots of
// durationMinutes, left-aligned to the interval start. A trailing remainder
// shorter than the duration yields no slot. Output is ordered ascending by
// start instant; slots never overlap.
func SliceSlots(free []TimeInterval, durationMinutes int) ([]BookableSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}

	slots := make([]BookableSlot, 0)

	for _, interval := range free {
		cursor := interval.StartTime
		for {
			slotEnd, err := cursor.AddMinutes(durationMinutes)
			if err != nil {
				// Slot would run past midnight: the free interval cannot hold it
				break
			}
			if slotEnd.IsAfter(interval.EndTime) {
				break
			}

			slots = append(slots, BookableSlot{
				Interval: TimeInterval{
					Date:      interval.Date,
					StartTime: cursor,
					EndTime:   slotEnd,
				},
				DurationMinutes: durationMinutes,
			})
			cursor = slotEnd
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		a, errA := slots[i].Interval.StartAt()
		b, errB := slots[j].Interval.StartAt()
		if errA != nil || errB != nil {
			return false
		}
		return a.Before(b)
	})

	return slots, nil
}
