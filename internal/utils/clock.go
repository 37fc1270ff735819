package utils

import "time"

// Clock abstracts "now" for the code that depends on the current day:
// the monthly transfer job and the missing-entry report.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock returns a fixed instant, letting tests pin the report's
// "today" or drive the transfer job across month boundaries.
type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

// SetNow moves the clock to the given instant.
func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}
