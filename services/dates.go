package services

import "time"

const dateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD boundary string into a UTC midnight
// date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return d.UTC(), nil
}

// truncateToDate drops the time-of-day so calendar arithmetic is stable no
// matter what the injected clock returns.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns b - a in whole calendar days.
func daysBetween(a, b time.Time) int {
	return int(truncateToDate(b).Sub(truncateToDate(a)).Hours() / 24)
}
