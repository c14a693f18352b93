package services

import (
	"time"

	"github.com/pedrohqs/atrio/internal/models"
)

// PeriodWindow holds the inclusive day-granularity bounds of one goal period.
type PeriodWindow struct {
	Start time.Time
	End   time.Time
}

// WindowFor computes the current window for a period type: daily is the
// calendar day itself, weekly runs Monday through Sunday, monthly and yearly
// follow the calendar. Unknown period types fall back to daily.
func WindowFor(periodType string, now time.Time) PeriodWindow {
	day := dateOnly(now)

	switch periodType {
	case models.PeriodWeekly:
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := day.AddDate(0, 0, -(weekday - 1))
		return PeriodWindow{Start: start, End: start.AddDate(0, 0, 6)}
	case models.PeriodMonthly:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return PeriodWindow{Start: start, End: start.AddDate(0, 1, -1)}
	case models.PeriodYearly:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
		return PeriodWindow{Start: start, End: time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, day.Location())}
	default:
		return PeriodWindow{Start: day, End: day}
	}
}

// ContainsPeriodStart reports whether a stored period_start belongs to this
// window. The comparison is by calendar day: rows stamped in an earlier
// period keep their history but never count as current.
func (window PeriodWindow) ContainsPeriodStart(periodStart time.Time) bool {
	return sameDay(window.Start, periodStart)
}

func dateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}

func sameDay(a time.Time, b time.Time) bool {
	yearA, monthA, dayA := a.Date()
	yearB, monthB, dayB := b.Date()
	return yearA == yearB && monthA == monthB && dayA == dayB
}
