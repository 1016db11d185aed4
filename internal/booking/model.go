package booking

import "time"

// Status of a booking. Only pending and confirmed bookings block a
// resource; cancelled and completed bookings never conflict.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Blocking reports whether a booking in this status occupies its resource.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Interval is a half-open time range [Start, End). Two back-to-back
// intervals touching at the boundary instant do not overlap.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the interval is well-formed (Start strictly before End).
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Overlaps implements the half-open overlap test:
// a.Start < b.End AND a.End > b.Start.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Booking occupies a resource for an interval on behalf of a user.
type Booking struct {
	ID         string
	PropertyID string
	ResourceID string
	UserID     string
	StartTime  time.Time
	EndTime    time.Time
	PartySize  int
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Interval returns the booking's occupied time range.
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// Filter selects bookings for the blocking query.
type Filter struct {
	PropertyID  string
	ResourceIDs []string
	Window      Interval
}
