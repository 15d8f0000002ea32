package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormat(t *testing.T) {
	got, err := Format(date(2024, time.March, 5), DefaultLayout)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", got)

	_, err = Format(time.Time{}, DefaultLayout)
	require.Error(t, err)
}

func TestAddSubtractDays(t *testing.T) {
	start := date(2024, time.January, 30)

	assert.Equal(t, date(2024, time.February, 4), AddDays(start, 5))
	assert.Equal(t, date(2024, time.January, 25), SubtractDays(start, 5))

	// Leap day.
	assert.Equal(t, date(2024, time.February, 29), AddDays(date(2024, time.February, 28), 1))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 31, DaysBetween(date(2024, time.January, 1), date(2024, time.February, 1)))
	assert.Equal(t, 0, DaysBetween(date(2024, time.January, 1), date(2024, time.January, 1)))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(date(2024, time.March, 9)))  // Saturday
	assert.True(t, IsWeekend(date(2024, time.March, 10))) // Sunday
	assert.False(t, IsWeekend(date(2024, time.March, 11)))
}

func TestBusinessDays(t *testing.T) {
	// Monday through Friday, inclusive.
	assert.Equal(t, 5, BusinessDays(date(2024, time.March, 4), date(2024, time.March, 8)))
	// Full week including the weekend.
	assert.Equal(t, 5, BusinessDays(date(2024, time.March, 4), date(2024, time.March, 10)))
	// Single weekend day.
	assert.Equal(t, 0, BusinessDays(date(2024, time.March, 9), date(2024, time.March, 9)))
}

func TestAge(t *testing.T) {
	birth := date(1990, time.June, 15)

	assert.Equal(t, 33, Age(birth, date(2024, time.June, 14)))
	assert.Equal(t, 34, Age(birth, date(2024, time.June, 15)))
	assert.Equal(t, 34, Age(birth, date(2024, time.December, 1)))
}

func TestQuarter(t *testing.T) {
	assert.Equal(t, 1, Quarter(date(2024, time.February, 1)))
	assert.Equal(t, 2, Quarter(date(2024, time.April, 1)))
	assert.Equal(t, 3, Quarter(date(2024, time.September, 30)))
	assert.Equal(t, 4, Quarter(date(2024, time.December, 31)))
}

func TestMonthBounds(t *testing.T) {
	d := date(2024, time.February, 15)

	assert.Equal(t, date(2024, time.February, 1), StartOfMonth(d))

	end := EndOfMonth(d)
	assert.Equal(t, 29, end.Day())
	assert.Equal(t, time.February, end.Month())
}
