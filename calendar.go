package cronexpr

import "time"

// daysInMonth returns the number of days in the given calendar month,
// correctly accounting for leap years.
func daysInMonth(year int, month time.Month) int {
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	lastOfThis := firstOfNext.AddDate(0, 0, -1)
	return lastOfThis.Day()
}

// nearestWeekday implements spec.md §4.5's day-of-month `W` rule: start
// on (year, month, day); if that day falls on Saturday, shift back one
// day, if Sunday, shift forward one day, otherwise leave it unchanged.
// This is intentionally the "shift only, no clamping" variant — it may
// cross a month boundary (a Saturday on the 1st resolves to the Friday
// of the *previous* month). See spec.md §9 for the documented ambiguity
// with the "stay within month" variant some cron dialects use instead.
func nearestWeekday(year int, month time.Month, day int, loc *time.Location) time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, loc)
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

// lastWeekdayOfMonth returns the day-of-month of the last occurrence of
// weekday (Go's time.Weekday scale, Sunday=0) in (year, month).
func lastWeekdayOfMonth(year int, month time.Month, weekday time.Weekday) int {
	last := daysInMonth(year, month)
	for d := last; d >= 1; d-- {
		if time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Weekday() == weekday {
			return d
		}
	}
	panic("cronexpr: no matching weekday found in month")
}

// nthWeekdayOfMonth returns the day-of-month of the k-th (1-indexed)
// occurrence of weekday in (year, month), or ok=false if the month does
// not have a k-th occurrence (k==5 for months with only four).
func nthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, k int) (day int, ok bool) {
	count := 0
	last := daysInMonth(year, month)
	for d := 1; d <= last; d++ {
		if time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Weekday() == weekday {
			count++
			if count == k {
				return d, true
			}
		}
	}
	return 0, false
}
