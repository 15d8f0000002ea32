// Package dateutil provides calendar helpers for report bucketing and age
// calculations.
package dateutil

import (
	"fmt"
	"time"
)

// DefaultLayout is the layout used when none is given.
const DefaultLayout = "2006-01-02"

// Format renders the date with the given layout, defaulting to ISO
// year-month-day.
func Format(date time.Time, layout string) (string, error) {
	if date.IsZero() {
		return "", fmt.Errorf("date is required")
	}
	if layout == "" {
		layout = DefaultLayout
	}
	return date.Format(layout), nil
}

// AddDays returns the date shifted forward by days. Negative values shift
// backward.
func AddDays(date time.Time, days int) time.Time {
	return date.AddDate(0, 0, days)
}

// SubtractDays returns the date shifted backward by days.
func SubtractDays(date time.Time, days int) time.Time {
	return date.AddDate(0, 0, -days)
}

// DaysBetween returns the number of whole days from start to end. The result
// is negative when end precedes start.
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// IsWeekend reports whether the date falls on a Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	day := date.Weekday()
	return day == time.Saturday || day == time.Sunday
}

// BusinessDays counts the weekdays in the inclusive range [start, end].
func BusinessDays(start, end time.Time) int {
	count := 0
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		if !IsWeekend(current) {
			count++
		}
	}
	return count
}

// Age returns the number of whole years from birth to now.
func Age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	// Not yet reached this year's birthday.
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// Quarter returns the calendar quarter of the date, 1 through 4.
func Quarter(date time.Time) int {
	return (int(date.Month())-1)/3 + 1
}

// StartOfMonth returns midnight on the first day of the date's month.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last instant of the date's month.
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, 0).Add(-time.Nanosecond)
}
