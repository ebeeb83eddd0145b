package cronexpr

import "time"

// hourField is the hour position (0-23) of a cron expression.
type hourField struct{ k kernel }

func newHourField() hourField {
	return hourField{k: kernel{name: "hour", rangeStart: 0, rangeEnd: 23}}
}

func (f hourField) fieldName() string { return f.k.name }

func (f hourField) validate(token string) error {
	return validateList(token, f.k.validateNumeric)
}

func (f hourField) isSatisfiedBy(t time.Time, token string) bool {
	return f.k.matchesAny(t.Hour(), token)
}

// increment advances (or retreats) the cursor by one hour, zeroing the
// minute to :00 going forward or :59 going backward. Components are
// adjusted via time.Date rather than duration arithmetic so the result
// stays correct across DST transitions and non-whole-hour zone offsets
// (St. John's, Kathmandu), per spec.md §4.3.
func (f hourField) increment(c *time.Time, invert bool, token string) {
	y, mo, d := c.Date()
	h := c.Hour()
	loc := c.Location()
	if !invert {
		*c = time.Date(y, mo, d, h+1, 0, 0, 0, loc)
		return
	}
	*c = time.Date(y, mo, d, h-1, 59, 0, 0, loc)
}
