// Package domain holds the roster scheduling model: staff contracts, shift
// patterns, the policy calendar (day types, opening hours, slot requirements),
// leave requests and emitted shifts. All times are minutes of day on a
// 15-minute slot grid; dates are plain YYYY-MM-DD values.
package domain

import (
	"fmt"
	"sort"
	"time"
)

// SlotMinutes is the width of one coverage slot.
const SlotMinutes = 15

// MinutesPerDay is the number of minutes in a calendar day. A closing time of
// 24:00 is represented as this value.
const MinutesPerDay = 24 * 60

// ParseClock parses an HH:MM value into minutes of day. 24:00 is accepted as
// the end-of-day closing bound.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, NewInvalidInput("invalid clock value %q", s)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, NewInvalidInput("invalid clock value %q", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes of day as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Date is a calendar date in YYYY-MM-DD form. Lexical order equals
// chronological order, so dates sort as plain strings.
type Date string

// ParseDate validates a YYYY-MM-DD value.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", NewInvalidInput("invalid date %q", s)
	}
	return Date(s), nil
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	t, _ := time.Parse("2006-01-02", string(d))
	return t
}

// Weekday returns the day of week. Go's time package already counts
// 0=Sunday..6=Saturday, which is the convention the external configuration
// uses, so no index rotation is applied anywhere.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// ISOWeek returns the ISO year and week number.
func (d Date) ISOWeek() (int, int) {
	return d.Time().ISOWeek()
}

// String implements fmt.Stringer.
func (d Date) String() string { return string(d) }

// SortDates returns a sorted copy of the given dates.
func SortDates(dates []Date) []Date {
	sorted := make([]Date, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}
