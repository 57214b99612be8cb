package utils

import (
	"time"

	"github.com/julianstephens/cotask/internal/constants"
)

// Today returns the current calendar day (YYYY-MM-DD) in UTC. All "same day"
// business rules use the UTC calendar day so behaviour does not depend on the
// server's locale.
func Today(now time.Time) string {
	return now.UTC().Format(constants.DateFormat)
}

// ParseDay parses a calendar-day string (YYYY-MM-DD) as midnight UTC.
func ParseDay(day string) (time.Time, error) {
	return time.Parse(constants.DateFormat, day)
}

// DayDiff returns the number of whole days from a to b, both given as
// YYYY-MM-DD strings. The result is negative when b precedes a.
func DayDiff(a, b string) (int, error) {
	ta, err := ParseDay(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}
