package domain

import (
	"github.com/salonkit/schedule-service/pkg/types"
)

// Week is a Monday-to-Sunday ISO week, identified by its Monday.
// All schedule queries are scoped to one displayed week.
type Week struct {
	Start types.DateString // always a Monday
}

// WeekOf returns the ISO week containing the given date.
func WeekOf(date types.DateString) (Week, error) {
	monday, err := date.StartOfISOWeek()
	if err != nil {
		return Week{}, err
	}
	return Week{Start: monday}, nil
}

// End returns the Sunday of the week.
func (w Week) End() (types.DateString, error) {
	return w.Start.AddDays(6)
}

// Contains reports whether the given date falls inside the week.
func (w Week) Contains(date types.DateString) bool {
	start, err := w.Start.Time()
	if err != nil {
		return false
	}
	day, err := date.Time()
	if err != nil {
		return false
	}
	diff := int(day.Sub(start).Hours() / 24)
	return diff >= 0 && diff <= 6
}
