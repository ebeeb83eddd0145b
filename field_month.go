package cronexpr

import "time"

// monthField is the month position (1-12, literals JAN..DEC) of a cron
// expression.
type monthField struct{ k kernel }

func newMonthField() monthField {
	return monthField{k: kernel{name: "month", rangeStart: 1, rangeEnd: 12, literals: monthLiterals}}
}

func (f monthField) fieldName() string { return f.k.name }

func (f monthField) validate(token string) error {
	if token == "?" {
		return nil
	}
	return validateList(f.k.convertLiterals(token), f.k.validateNumeric)
}

func (f monthField) isSatisfiedBy(t time.Time, token string) bool {
	return f.k.matchesAny(int(t.Month()), f.k.convertLiterals(token))
}

// increment jumps to the first day of the next month at 00:00 (forward)
// or the last day of the previous month at 23:59 (backward), correctly
// rolling across year boundaries, per spec.md §4.4.
func (f monthField) increment(c *time.Time, invert bool, token string) {
	y, mo, _ := c.Date()
	loc := c.Location()
	if !invert {
		*c = time.Date(y, mo+1, 1, 0, 0, 0, 0, loc)
		return
	}
	firstOfThis := time.Date(y, mo, 1, 0, 0, 0, 0, loc)
	*c = firstOfThis.AddDate(0, 0, -1)
	y2, mo2, d2 := c.Date()
	*c = time.Date(y2, mo2, d2, 23, 59, 0, 0, loc)
}
