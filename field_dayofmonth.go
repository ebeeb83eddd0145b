package cronexpr

import (
	"strconv"
	"strings"
	"time"
)

// dayOfMonthField is the day-of-month position (1-31) of a cron
// expression, extended with the `L` (last day of month) and `<n>W`
// (nearest weekday) tokens.
type dayOfMonthField struct{ k kernel }

func newDayOfMonthField() dayOfMonthField {
	return dayOfMonthField{k: kernel{name: "day-of-month", rangeStart: 1, rangeEnd: 31}}
}

func (f dayOfMonthField) fieldName() string { return f.k.name }

// trimNearestWeekday reports whether token has the form "<n>W" and, if
// so, returns the digits before the W.
func trimNearestWeekday(token string) (digits string, ok bool) {
	if len(token) < 2 || token[len(token)-1] != 'W' {
		return "", false
	}
	digits = token[:len(token)-1]
	if digits == "" {
		return "", false
	}
	if _, err := strconv.Atoi(digits); err != nil {
		return "", false
	}
	return digits, true
}

func (f dayOfMonthField) validate(token string) error {
	if token == "?" {
		return nil
	}
	if token == "L" {
		return nil
	}
	if digits, ok := trimNearestWeekday(token); ok {
		return f.k.validateRangeOrValue(digits)
	}
	if strings.Contains(token, ",") && strings.ContainsAny(token, "LW") {
		return &InvalidValueError{
			Position: 2, Field: f.k.name, Token: token,
			Reason: "L and W cannot be combined with other list entries",
		}
	}
	if strings.ContainsAny(token, "LW") {
		return &InvalidValueError{
			Position: 2, Field: f.k.name, Token: token,
			Reason: "L must stand alone and W must follow a single day number",
		}
	}
	return validateList(token, f.k.validateNumeric)
}

func (f dayOfMonthField) isSatisfiedBy(t time.Time, token string) bool {
	switch token {
	case "?":
		return true
	case "L":
		return t.Day() == daysInMonth(t.Year(), t.Month())
	}
	if digits, ok := trimNearestWeekday(token); ok {
		n, err := strconv.Atoi(digits)
		if err != nil {
			return false
		}
		nearest := nearestWeekday(t.Year(), t.Month(), n, t.Location())
		return sameCalendarDay(t, nearest)
	}
	return f.k.matchesAny(t.Day(), token)
}

// increment advances (or retreats) the cursor by one day, zeroing the
// time to 00:00 going forward or 23:59 going backward, per spec.md §4.5.
func (f dayOfMonthField) increment(c *time.Time, invert bool, token string) {
	y, mo, d := c.Date()
	loc := c.Location()
	midnight := time.Date(y, mo, d, 0, 0, 0, 0, loc)
	if !invert {
		*c = midnight.AddDate(0, 0, 1)
		return
	}
	prev := midnight.AddDate(0, 0, -1)
	y2, mo2, d2 := prev.Date()
	*c = time.Date(y2, mo2, d2, 23, 59, 0, 0, loc)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
