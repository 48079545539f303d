package domain

// AvailabilityBlock is an employee-declared window of bookable time.
// Blocks are persisted by the salon backend; the ID is an opaque
// server-assigned identifier. Unconfirmed client-side drafts carry no ID.
type AvailabilityBlock struct {
	ID         int64
	EmployeeID int64
	Interval   TimeInterval
	Title      string
}

// Appointment is a committed booking that consumes part of an employee's
// availability. Appointments are read-only for the scheduler: they are only
// carved out of availability, never mutated.
type Appointment struct {
	ID          int64
	EmployeeID  int64
	ServiceID   int64
	ServiceName string
	Interval    TimeInterval
}

// Intervals extracts the time intervals from a list of availability blocks.
func Intervals(blocks []AvailabilityBlock) []TimeInterval {
	intervals := make([]TimeInterval, len(blocks))
	for i, b := range blocks {
		intervals[i] = b.Interval
	}
	return intervals
}

// AppointmentIntervals extracts the time intervals from a list of appointments.
func AppointmentIntervals(appointments []Appointment) []TimeInterval {
	intervals := make([]TimeInterval, len(appointments))
	for i, a := range appointments {
		intervals[i] = a.Interval
	}
	return intervals
}

// FreeIntervals computes the set-difference of availability minus appointments:
// every point covered by a block and not covered by any appointment on the same
// calendar day ends up in exactly one returned interval.
func FreeIntervals(blocks []AvailabilityBlock, appointments []Appointment) []TimeInterval {
	return SubtractAll(Intervals(blocks), AppointmentIntervals(appointments))
}
