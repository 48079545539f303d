package domain

import (
	"fmt"
	"time"

	"github.com/salonkit/schedule-service/pkg/types"
)

// TimeInterval represents a contiguous span of time within a single calendar day.
// Date and times are UTC wall-clock values; an interval never spans midnight.
type TimeInterval struct {
	Date      types.DateString
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Validate checks the interval invariant: valid date, valid times, start strictly before end.
// An end-before-start pair is how an overnight-spanning proposal arrives, so it is
// rejected here rather than interpreted.
func (i TimeInterval) Validate() error {
	if err := i.Date.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	if err := i.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	if err := i.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	if !i.StartTime.IsBefore(i.EndTime) {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidInterval, i.StartTime, i.EndTime)
	}
	return nil
}

// StartAt composes date and start time into a single UTC instant.
// Comparisons always happen on composed instants, never on date and time fields
// independently.
func (i TimeInterval) StartAt() (time.Time, error) {
	return i.Date.At(i.StartTime)
}

// EndAt composes date and end time into a single UTC instant.
func (i TimeInterval) EndAt() (time.Time, error) {
	return i.Date.At(i.EndTime)
}

// Minutes returns the interval length in minutes.
func (i TimeInterval) Minutes() (int, error) {
	return i.StartTime.MinutesUntil(i.EndTime)
}

// Overlaps reports whether two intervals share at least one point in time.
// Intervals are half-open [start, end): touching boundaries do not overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	if i.Date != other.Date {
		return false
	}

	iStart, err := i.StartAt()
	if err != nil {
		return false
	}
	iEnd, err := i.EndAt()
	if err != nil {
		return false
	}
	oStart, err := other.StartAt()
	if err != nil {
		return false
	}
	oEnd, err := other.EndAt()
	if err != nil {
		return false
	}

	return iStart.Before(oEnd) && iEnd.After(oStart)
}

// Covers reports whether other lies entirely within this interval.
func (i TimeInterval) Covers(other TimeInterval) bool {
	if i.Date != other.Date {
		return false
	}
	return !other.StartTime.IsBefore(i.StartTime) && !other.EndTime.IsAfter(i.EndTime)
}

// Subtract removes the overlap with other from this interval, returning zero,
// one or two fragments. A non-overlapping other leaves the interval unchanged.
// Degenerate fragments (start == end) are discarded.
func (i TimeInterval) Subtract(other TimeInterval) []TimeInterval {
	if !i.Overlaps(other) {
		return []TimeInterval{i}
	}

	fragments := make([]TimeInterval, 0, 2)

	// Left fragment: [interval start, overlap start)
	if i.StartTime.IsBefore(other.StartTime) {
		fragments = append(fragments, TimeInterval{
			Date:      i.Date,
			StartTime: i.StartTime,
			EndTime:   other.StartTime,
		})
	}

	// Right fragment: [overlap end, interval end)
	if i.EndTime.IsAfter(other.EndTime) {
		fragments = append(fragments, TimeInterval{
			Date:      i.Date,
			StartTime: other.EndTime,
			EndTime:   i.EndTime,
		})
	}

	return fragments
}

// SubtractAll removes every interval in remove from every interval in base.
// Each removal operates on the output of the previous pass, which correctly
// handles several removals carved out of the same block, including back-to-back
// ones. The order of removals does not affect the result.
//
// Both availability-minus-appointments and add-fragment clipping are instances
// of this one operation. Inputs are expected to be validated by the caller.
func SubtractAll(base []TimeInterval, remove []TimeInterval) []TimeInterval {
	working := make([]TimeInterval, len(base))
	copy(working, base)

	for _, r := range remove {
		next := make([]TimeInterval, 0, len(working))
		for _, interval := range working {
			next = append(next, interval.Subtract(r)...)
		}
		working = next
	}

	return working
}
