package timesheet_test

import (
	"testing"
	"time"

	"devflow/internal/timesheet"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveManual_SameDay(t *testing.T) {
	cases := []struct {
		start, end string
		minutes    int
	}{
		{"09:00", "17:00", 480},
		{"09:00", "09:01", 1},
		{"00:00", "23:59", 1439},
		{"13:15", "14:45", 90},
	}

	for _, tc := range cases {
		start, end, minutes, err := timesheet.ResolveManual(date(2025, time.March, 10), tc.start, tc.end)
		assert.NoError(t, err)
		assert.Equal(t, tc.minutes, minutes)
		assert.Equal(t, start.Day(), end.Day())
	}
}

func TestResolveManual_OvernightRollover(t *testing.T) {
	// End before start means the end lands on the next day.
	start, end, minutes, err := timesheet.ResolveManual(date(2025, time.March, 10), "23:00", "01:00")
	assert.NoError(t, err)
	assert.Equal(t, 120, minutes)
	assert.Equal(t, 10, start.Day())
	assert.Equal(t, 11, end.Day())

	_, _, minutes, err = timesheet.ResolveManual(date(2025, time.March, 10), "22:30", "06:30")
	assert.NoError(t, err)
	assert.Equal(t, 480, minutes)
}

func TestResolveManual_EqualClocksRejected(t *testing.T) {
	_, _, _, err := timesheet.ResolveManual(date(2025, time.March, 10), "08:00", "08:00")
	assert.ErrorIs(t, err, timesheet.ErrNonPositiveDuration)
}

func TestResolveManual_BadClock(t *testing.T) {
	for _, bad := range []string{"", "8", "25:00", "12:60", "noon", "12.30"} {
		_, _, _, err := timesheet.ResolveManual(date(2025, time.March, 10), bad, "12:00")
		assert.Error(t, err, "start clock %q should be rejected", bad)

		_, _, _, err = timesheet.ResolveManual(date(2025, time.March, 10), "08:00", bad)
		assert.Error(t, err, "end clock %q should be rejected", bad)
	}
}

func TestDurationMinutes_FloorsSeconds(t *testing.T) {
	start := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, timesheet.DurationMinutes(start, start.Add(59*time.Second)))
	assert.Equal(t, 1, timesheet.DurationMinutes(start, start.Add(60*time.Second)))
	assert.Equal(t, 1, timesheet.DurationMinutes(start, start.Add(119*time.Second)))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0h 0m", timesheet.FormatMinutes(0))
	assert.Equal(t, "0h 59m", timesheet.FormatMinutes(59))
	assert.Equal(t, "1h 0m", timesheet.FormatMinutes(60))
	assert.Equal(t, "10h 0m", timesheet.FormatMinutes(600))
	assert.Equal(t, "2h 5m", timesheet.FormatMinutes(125))
}

func TestRange_Today(t *testing.T) {
	asOf := time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC)

	start, end, bounded := timesheet.Range(timesheet.ScopeToday, asOf)
	assert.True(t, bounded)
	assert.Equal(t, date(2025, time.March, 12), start)
	assert.Equal(t, date(2025, time.March, 13), end)
}

func TestRange_WeekStartsMonday(t *testing.T) {
	// 2025-03-12 is a Wednesday; its ISO week runs Mon 10th .. Sun 16th.
	asOf := time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC)

	start, end, bounded := timesheet.Range(timesheet.ScopeWeek, asOf)
	assert.True(t, bounded)
	assert.Equal(t, date(2025, time.March, 10), start)
	assert.Equal(t, date(2025, time.March, 17), end)

	// A Sunday still belongs to the week that started the previous Monday.
	sunday := time.Date(2025, time.March, 16, 8, 0, 0, 0, time.UTC)
	start, _, _ = timesheet.Range(timesheet.ScopeWeek, sunday)
	assert.Equal(t, date(2025, time.March, 10), start)

	// A Monday starts its own week.
	monday := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	start, _, _ = timesheet.Range(timesheet.ScopeWeek, monday)
	assert.Equal(t, date(2025, time.March, 10), start)
}

func TestRange_Month(t *testing.T) {
	asOf := time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC)

	start, end, bounded := timesheet.Range(timesheet.ScopeMonth, asOf)
	assert.True(t, bounded)
	assert.Equal(t, date(2025, time.December, 1), start)
	assert.Equal(t, date(2026, time.January, 1), end)
}

func TestRange_TotalUnbounded(t *testing.T) {
	_, _, bounded := timesheet.Range(timesheet.ScopeTotal, time.Now())
	assert.False(t, bounded)
}
