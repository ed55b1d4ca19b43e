// Package expiry computes the next weekly option expiry for an index.
//
// Weekdays use the 0=Monday..6=Sunday convention of the index table.
package expiry

import "time"

// Next returns the next expiry date on or after today for options expiring
// on targetWeekday. When today already is the expiry weekday the result is
// today itself: expiry day counts as its own expiry.
func Next(targetWeekday int, today time.Time) time.Time {
	return today.AddDate(0, 0, DaysTo(targetWeekday, today))
}

// DaysTo returns how many calendar days remain until the next expiry,
// zero when today is the expiry weekday.
func DaysTo(targetWeekday int, today time.Time) int {
	w := mondayBased(today.Weekday())
	if w <= targetWeekday {
		return targetWeekday - w
	}
	return 7 - w + targetWeekday
}

// mondayBased converts Go's Sunday-based weekday to the 0=Monday convention.
func mondayBased(d time.Weekday) int {
	return (int(d) + 6) % 7
}
