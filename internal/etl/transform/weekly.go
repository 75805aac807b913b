package transform

import "time"

// Weeks are labelled by their Monday end date and cover the preceding
// Tuesday-Monday span, matching the bulletin's reporting convention. This is
// the single place week boundaries are derived.

// WeekEnd returns the Monday on or after d, the label of d's week.
func WeekEnd(d time.Time) time.Time {
	d = Midnight(d)
	offset := (int(time.Monday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}

// WeekStart returns the first covered day of the week labelled end.
func WeekStart(end time.Time) time.Time {
	return Midnight(end).AddDate(0, 0, -6)
}

// Midnight truncates a timestamp to its UTC calendar date.
func Midnight(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
