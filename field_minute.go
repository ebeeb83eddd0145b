package cronexpr

import "time"

// minuteField is the minute position (0-59) of a cron expression.
type minuteField struct{ k kernel }

func newMinuteField() minuteField {
	return minuteField{k: kernel{name: "minute", rangeStart: 0, rangeEnd: 59}}
}

func (f minuteField) fieldName() string { return f.k.name }

func (f minuteField) validate(token string) error {
	return validateList(token, f.k.validateNumeric)
}

func (f minuteField) isSatisfiedBy(t time.Time, token string) bool {
	return f.k.matchesAny(t.Minute(), token)
}

// increment implements spec.md §4.2: jump the cursor directly to the
// next (or previous) minute in token's concrete minute set, rather than
// stepping one minute at a time up to 59 times per hour. On wrapping
// past the set's last element, the hour advances (or retreats) by one
// and the minute snaps to the set's first (or last) element.
func (f minuteField) increment(c *time.Time, invert bool, token string) {
	values := f.k.rangeForExpression(token)
	if len(values) == 0 {
		values = f.k.fullRange()
	}
	y, mo, d := c.Date()
	h := c.Hour()
	loc := c.Location()
	cur := c.Minute()

	if !invert {
		for _, v := range values {
			if v > cur {
				*c = time.Date(y, mo, d, h, v, 0, 0, loc)
				return
			}
		}
		*c = time.Date(y, mo, d, h+1, values[0], 0, 0, loc)
		return
	}
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] < cur {
			*c = time.Date(y, mo, d, h, values[i], 0, 0, loc)
			return
		}
	}
	*c = time.Date(y, mo, d, h-1, values[len(values)-1], 0, 0, loc)
}
