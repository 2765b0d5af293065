package schedule

import (
	"errors"
	"fmt"
)

var ErrBadTime = errors.New("invalid time of day")

// TimeOfDay is minutes since midnight. Appointment slots have minute
// granularity; comparisons are plain integer comparisons.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" (24-hour clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	h, m := 0, 0
	for _, c := range s[:2] {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrBadTime, s)
		}
		h = h*10 + int(c-'0')
	}
	for _, c := range s[3:] {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrBadTime, s)
		}
		m = m*10 + int(c-'0')
	}
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Range is a closed interval of times within one day.
type Range struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Contains reports whether t falls inside the range, bounds included.
func (r Range) Contains(t TimeOfDay) bool {
	return r.Start <= t && t <= r.End
}
