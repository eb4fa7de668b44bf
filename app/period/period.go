// Package period maps calendar dates to period indices and period keys for
// daily, weekly and monthly chores.
//
// The weekly number is deliberately NOT ISO-8601: it is
// ceil((dayOfYear + (jan1Weekday or 7) - 1) / 7), which resets at calendar
// year boundaries instead of following ISO week-year rules. Historical
// period keys were written with this formula, so it must not change.
package period

import (
	"fmt"
	"time"

	"chorewheel/app/models"
)

// UnknownKey is returned when a period key is requested for a chore that no
// longer exists. Callers must treat it as uncategorizable and never merge it
// with a real period.
const UnknownKey = "unknown"

// Index maps a date to an integer that advances by exactly one per period.
// The date's own location defines the day boundary.
func Index(freq models.Frequency, t time.Time) int {
	switch freq {
	case models.Daily:
		return epochDays(t)
	case models.Weekly:
		return weekOfYear(t)
	default:
		y, m, _ := t.Date()
		return y*12 + int(m) - 1
	}
}

// KeyFor builds the period key for a frequency and date, e.g. "D:2026-8-30",
// "W:2026-W35", "M:2026-8". Components are unpadded, months 1-based.
func KeyFor(freq models.Frequency, t time.Time) string {
	y, m, d := t.Date()
	switch freq {
	case models.Daily:
		return fmt.Sprintf("D:%d-%d-%d", y, int(m), d)
	case models.Weekly:
		return fmt.Sprintf("W:%d-W%d", y, weekOfYear(t))
	default:
		return fmt.Sprintf("M:%d-%d", y, int(m))
	}
}

// Key builds the period key for the chore with the given id, looking up its
// frequency in chores. A missing chore yields UnknownKey rather than an
// error.
func Key(chores []models.Chore, choreID string, t time.Time) string {
	for i := range chores {
		if chores[i].ID == choreID {
			return KeyFor(chores[i].Frequency, t)
		}
	}
	return UnknownKey
}

// NextBoundary returns the first instant strictly after t at which the
// period index for freq changes. Used to schedule re-reconciliation.
func NextBoundary(freq models.Frequency, t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
	switch freq {
	case models.Daily:
		return midnight
	case models.Monthly:
		return time.Date(y, m+1, 1, 0, 0, 0, 0, t.Location())
	default:
		// The pseudo-ISO week can change on any midnight (including Jan 1),
		// so walk day by day until the index moves.
		cur := Index(models.Weekly, t)
		next := midnight
		for Index(models.Weekly, next) == cur {
			next = next.AddDate(0, 0, 1)
		}
		return next
	}
}

// epochDays counts calendar days since the Unix epoch, using t's own
// location for the day boundary.
func epochDays(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// weekOfYear is the per-year pseudo-ISO week number. Sunday counts as
// weekday 7 for the Jan 1 offset.
func weekOfYear(t time.Time) int {
	jan1 := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	jw := int(jan1.Weekday())
	if jw == 0 {
		jw = 7
	}
	return (t.YearDay() + jw + 5) / 7
}
