package model

import (
	"fmt"
	"time"
)

// clockLayout is the wire format for times of day.
const clockLayout = "15:04"

// DateLayout is the wire format for schedule dates.
const DateLayout = "2006-01-02"

// Clock is a time of day expressed in minutes since midnight.
type Clock int

// ParseClock parses a strict 24-hour "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("time must be in HH:MM 24-hour format: %q", s)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// String formats the clock back to "HH:MM". Values outside a single day are
// clamped for display.
func (c Clock) String() string {
	m := int(c)
	if m < 0 {
		m = 0
	}
	if m > 23*60+59 {
		m = 23*60 + 59
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Add returns the clock shifted by the given number of minutes.
func (c Clock) Add(minutes int) Clock { return c + Clock(minutes) }

// ParseDate validates a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %q", s)
	}
	return t, nil
}
