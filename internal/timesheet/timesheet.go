// Package timesheet holds the pure time-entry derivation rules: clock
// parsing, duration computation with overnight roll-over, duration
// formatting, and the date windows used by the statistics endpoints.
package timesheet

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrBadClock            = errors.New("clock must be in HH:MM format")
	ErrNonPositiveDuration = errors.New("duration must be greater than zero")
)

// ParseClock parses an "HH:MM" wall-clock string.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, ErrBadClock
	}
	return t.Hour(), t.Minute(), nil
}

// ResolveManual turns a date plus two HH:MM clock strings into concrete start
// and end instants. When the end clock is earlier than the start clock the end
// is taken to be on the following calendar day (overnight roll-over).
// Identical clocks are rejected: they are almost always a typo, not a 24h
// shift.
func ResolveManual(date time.Time, startClock, endClock string) (start, end time.Time, minutes int, err error) {
	sh, sm, err := ParseClock(startClock)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("start time: %w", err)
	}
	eh, em, err := ParseClock(endClock)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("end time: %w", err)
	}

	start = time.Date(date.Year(), date.Month(), date.Day(), sh, sm, 0, 0, date.Location())
	end = time.Date(date.Year(), date.Month(), date.Day(), eh, em, 0, 0, date.Location())
	if end.Equal(start) {
		return time.Time{}, time.Time{}, 0, ErrNonPositiveDuration
	}
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}

	minutes = DurationMinutes(start, end)
	if minutes <= 0 {
		return time.Time{}, time.Time{}, 0, ErrNonPositiveDuration
	}
	return start, end, minutes, nil
}

// DurationMinutes is the elapsed whole minutes between two instants, elapsed
// seconds floor-divided by 60.
func DurationMinutes(start, end time.Time) int {
	return int(end.Sub(start).Seconds()) / 60
}

// FormatMinutes renders a minute count as "XhYm".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// Scope selects the date window for aggregated statistics.
type Scope string

const (
	ScopeToday Scope = "today"
	ScopeWeek  Scope = "week"
	ScopeMonth Scope = "month"
	ScopeTotal Scope = "total"
)

func ValidScope(s Scope) bool {
	switch s {
	case ScopeToday, ScopeWeek, ScopeMonth, ScopeTotal:
		return true
	}
	return false
}

// Range returns the half-open [start, end) window for a scope as of the given
// instant. Weeks start on Monday; months are calendar months. ScopeTotal is
// unbounded and returns bounded=false.
func Range(scope Scope, asOf time.Time) (start, end time.Time, bounded bool) {
	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())

	switch scope {
	case ScopeToday:
		return day, day.AddDate(0, 0, 1), true
	case ScopeWeek:
		// Monday-based offset: Monday=0 .. Sunday=6.
		offset := (int(day.Weekday()) + 6) % 7
		monday := day.AddDate(0, 0, -offset)
		return monday, monday.AddDate(0, 0, 7), true
	case ScopeMonth:
		first := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
		return first, first.AddDate(0, 1, 0), true
	default:
		return time.Time{}, time.Time{}, false
	}
}
