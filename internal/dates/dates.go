// Package dates pins all calendar-date handling to UTC. Quota windows
// and report grouping both go through here, so the application and
// storage layers can never disagree about which day a timestamp
// belongs to.
package dates

import "time"

// DayFormat is the wire form for calendar dates.
const DayFormat = "2006-01-02"

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Window returns the half-open UTC interval [start, end) of the
// calendar day containing t.
func Window(t time.Time) (time.Time, time.Time) {
	start := Day(t)
	return start, start.AddDate(0, 0, 1)
}

// Format renders t's UTC calendar date.
func Format(t time.Time) string { return t.UTC().Format(DayFormat) }

// Parse reads a YYYY-MM-DD date as midnight UTC.
func Parse(s string) (time.Time, error) {
	return time.Parse(DayFormat, s)
}
