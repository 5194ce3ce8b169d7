// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// FormatDate renders a date the way it appears in reminder messages,
// e.g. "Monday, 02 Jan 2026"
func FormatDate(t time.Time) string {
	return t.Format("Monday, 02 Jan 2006")
}

// FormatTime renders a clock time for reminder messages, e.g. "2:30 PM"
func FormatTime(t time.Time) string {
	return t.Format("3:04 PM")
}
