package model

import (
	"fmt"
	"time"
)

// MinuteOfDay is a clock time expressed as minutes since midnight (0-1439).
// Appointments carry times in this form so the engine never re-parses "HH:MM"
// strings internally.
type MinuteOfDay int

func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		// The original data set stores seconds on some rows.
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
		}
	}
	return MinuteOfDay(t.Hour()*60 + t.Minute()), nil
}

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// CalendarDate is a local calendar date ("YYYY-MM-DD") with no timezone
// component. The ISO form compares correctly as a plain string, which is how
// date equality and "not in the past" checks work throughout the engine.
type CalendarDate string

func ParseCalendarDate(s string) (CalendarDate, error) {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return CalendarDate(s), nil
}

// Today returns the current calendar date in local time.
func Today() CalendarDate {
	return CalendarDate(time.Now().Format("2006-01-02"))
}

func (d CalendarDate) String() string { return string(d) }

// Before reports whether d falls strictly before other.
func (d CalendarDate) Before(other CalendarDate) bool { return string(d) < string(other) }
