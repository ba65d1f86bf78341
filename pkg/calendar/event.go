package calendar

import "time"

// Event is a single calendar event as returned by a Provider. All-day
// events carry the bare date in StartTime and set AllDay.
type Event struct {
	ID           string
	Summary      string
	Description  string
	StartTime    time.Time
	EndTime      time.Time
	AllDay       bool
	Confirmed    bool
	HasAttendees bool
	SelfResponse string
	OutOfOffice  bool
}

// Attended reports whether the account holder actually attended the event.
// With an attendee list the event must be confirmed and the self attendee
// must have accepted; without one a confirmed event counts as attended.
func (e Event) Attended() bool {
	if e.HasAttendees {
		return e.Confirmed && e.SelfResponse == "accepted"
	}
	return e.Confirmed
}

// Duration returns the event length in minutes.
func (e Event) Duration() float64 {
	return e.EndTime.Sub(e.StartTime).Seconds() / 60
}
