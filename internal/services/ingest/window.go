package ingest

import (
	"time"
)

// Window is an inclusive date range at day granularity. A message received at
// any wall-clock time on the From or To day is inside the window.
type Window struct {
	From time.Time
	To   time.Time
}

// NewWindow builds a window from two timestamps, keeping only their calendar
// days. From and To may be the same day for a single-day run.
func NewWindow(from, to time.Time) Window {
	return Window{
		From: truncateToDay(from),
		To:   truncateToDay(to),
	}
}

// Contains reports whether a received time, compared by its calendar day,
// falls inside the window. Both endpoints are inclusive.
func (w Window) Contains(received time.Time) bool {
	day := truncateToDay(received)
	return !day.Before(w.From) && !day.After(w.To)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StripTimezone drops the zone from a timestamp, keeping its wall-clock
// reading. Mailbox sources report times in arbitrary zones; the window is
// compared against the wall clock as the sender saw it.
func StripTimezone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
}
