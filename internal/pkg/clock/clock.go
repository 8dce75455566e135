package clock

import "time"

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// UTC reads the system clock in UTC, truncated to the microsecond precision
// Postgres keeps for timestamptz, so a saved timestamp reads back equal.
type UTC struct{}

func New() UTC {
	return UTC{}
}

func (UTC) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
