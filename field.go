package cronexpr

import (
	"strconv"
	"strings"
	"time"
)

// field is the capability set every cron field position exposes, per
// spec.md §4.1: validate, isSatisfiedBy, increment. rangeForExpression
// is a kernel method rather than part of this interface; only the
// minute field's increment uses it.
// Day-of-month and day-of-week extend the numeric kernel below with
// their own satisfaction arms for L, W, and # tokens (field_dayofmonth.go,
// field_dayofweek.go); minute, hour, and month are thin wrappers around
// the kernel alone (field_minute.go, field_hour.go, field_month.go).
type field interface {
	// fieldName identifies the field in error messages ("minute", "hour", ...).
	fieldName() string

	// validate performs a structural grammar check on token, returning a
	// descriptive error if it is malformed for this field.
	validate(token string) error

	// isSatisfiedBy reports whether t's extracted component matches token.
	// token is assumed already validated; invalid syntax is treated as
	// non-matching rather than panicking.
	isSatisfiedBy(t time.Time, token string) bool

	// increment advances (or, if invert, retreats) c by one field-unit,
	// zeroing (or maxing) lower-significance components as spec.md §4.1
	// describes. token is the original field token, needed by the minute
	// field's skip-aware increment.
	increment(c *time.Time, invert bool, token string)
}

// kernel holds the shared numeric matching logic parameterized by a
// field's valid value range, per spec.md §4.1's "shared numeric kernel
// ... parameterized by (rangeStart, rangeEnd, literals)".
type kernel struct {
	name                 string
	rangeStart, rangeEnd int
	literals             map[string]int
}

func (k kernel) size() int { return k.rangeEnd - k.rangeStart + 1 }

// fullRange returns every value in [rangeStart, rangeEnd], ascending.
func (k kernel) fullRange() []int {
	out := make([]int, 0, k.size())
	for v := k.rangeStart; v <= k.rangeEnd; v++ {
		out = append(out, v)
	}
	return out
}

// convertLiterals substitutes named literals (JAN..DEC, MON..SUN) for
// their canonical integers. Substitution is case-sensitive and applies
// to each maximal run of letters in the token, so it works correctly
// inside ranges ("MON-FRI"), lists ("JAN,MAR"), and hash tokens
// ("FRI#2") alike — per spec.md §4.1, "applied ... recursively inside
// ranges and hashes".
func (k kernel) convertLiterals(token string) string {
	if len(k.literals) == 0 {
		return token
	}
	var b strings.Builder
	start := 0
	flush := func(end int) {
		if end <= start {
			return
		}
		word := token[start:end]
		if v, ok := k.literals[word]; ok {
			b.WriteString(strconv.Itoa(v))
		} else {
			b.WriteString(word)
		}
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		isLetter := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
		if !isLetter {
			flush(i)
			b.WriteByte(c)
			start = i + 1
		}
	}
	flush(len(token))
	return b.String()
}

// validateNumeric checks a single (comma-free) numeric subtoken: a bare
// integer, a wildcard, a range, or a stepped range/wildcard/value. It
// rejects empty segments, non-integer parts, and out-of-bounds or
// decreasing ranges.
func (k kernel) validateNumeric(token string) error {
	if token == "" {
		return &OutOfRangeError{Field: k.name, Value: token, Reason: "empty field entry"}
	}

	if lhs, step, ok := strings.Cut(token, "/"); ok {
		if lhs == "" || step == "" {
			return &OutOfRangeError{Field: k.name, Value: token, Reason: "empty step entry"}
		}
		stepVal, err := strconv.Atoi(step)
		if err != nil {
			return &OutOfRangeError{Field: k.name, Value: token, Reason: "step must be an integer"}
		}
		if stepVal < 1 {
			return &OutOfRangeError{Field: k.name, Value: token, Reason: "step must be positive"}
		}
		if lhs == "*" {
			return nil
		}
		return k.validateRangeOrValue(lhs)
	}

	return k.validateRangeOrValue(token)
}

// validateRangeOrValue validates a bare wildcard, integer, or a-b range.
func (k kernel) validateRangeOrValue(token string) error {
	if token == "*" || token == "?" {
		return nil
	}
	if before, after, ok := strings.Cut(token, "-"); ok {
		if before == "" || after == "" {
			return &OutOfRangeError{Field: k.name, Value: token, Reason: "empty range bound"}
		}
		start, err := strconv.Atoi(before)
		if err != nil {
			return &OutOfRangeError{Field: k.name, Value: token, Reason: "non-integer range start"}
		}
		end, err := strconv.Atoi(after)
		if err != nil {
			return &OutOfRangeError{Field: k.name, Value: token, Reason: "non-integer range end"}
		}
		if start < k.rangeStart || end > k.rangeEnd {
			return &OutOfRangeError{
				Field: k.name, Value: token,
				Reason: "range bounds outside " + strconv.Itoa(k.rangeStart) + ".." + strconv.Itoa(k.rangeEnd),
			}
		}
		if start > end {
			return &OutOfRangeError{Field: k.name, Value: token, Reason: "decreasing range"}
		}
		return nil
	}
	v, err := strconv.Atoi(token)
	if err != nil {
		return &OutOfRangeError{Field: k.name, Value: token, Reason: "not an integer"}
	}
	if v < k.rangeStart || v > k.rangeEnd {
		return &OutOfRangeError{
			Field: k.name, Value: token,
			Reason: "value outside " + strconv.Itoa(k.rangeStart) + ".." + strconv.Itoa(k.rangeEnd),
		}
	}
	return nil
}

// isSatisfied reports whether scalar matches a single (comma-free)
// subtoken, per spec.md §4.1's isSatisfied kernel subroutine.
func (k kernel) isSatisfied(scalar int, token string) bool {
	if strings.Contains(token, "/") {
		ok, _ := k.isInIncrementsOfRanges(scalar, token)
		return ok
	}
	if before, after, ok := strings.Cut(token, "-"); ok {
		start, err1 := strconv.Atoi(before)
		end, err2 := strconv.Atoi(after)
		if err1 != nil || err2 != nil {
			return false
		}
		return scalar >= start && scalar <= end
	}
	if token == "*" || token == "?" {
		return true
	}
	v, err := strconv.Atoi(token)
	if err != nil {
		return false
	}
	return scalar == v
}

// isInIncrementsOfRanges implements spec.md §4.1's isInIncrementsOfRanges,
// including the wrap-around step policy: when step >= rangeEnd-rangeStart
// of the field, the expression collapses to the single value at index
// (step mod field size) of the *full field range* (§8's "Wrap-around
// step" property), which is what makes "*/123" legal on a 12-month
// field and pick April. Smaller steps enumerate start, start+step, ...
// up to the end of the addressed range.
func (k kernel) isInIncrementsOfRanges(scalar int, token string) (bool, error) {
	lhs, stepStr, ok := strings.Cut(token, "/")
	if !ok {
		return false, &OutOfRangeError{Field: k.name, Value: token, Reason: "missing step"}
	}
	step, err := strconv.Atoi(stepStr)
	if err != nil || step < 1 {
		return false, &OutOfRangeError{Field: k.name, Value: token, Reason: "step must be a positive integer"}
	}

	var start, end int
	switch {
	case lhs == "*":
		start, end = k.rangeStart, k.rangeEnd
	default:
		if before, after, isRange := strings.Cut(lhs, "-"); isRange {
			start, err = strconv.Atoi(before)
			if err != nil {
				return false, &OutOfRangeError{Field: k.name, Value: token, Reason: "non-integer range start"}
			}
			end, err = strconv.Atoi(after)
			if err != nil {
				return false, &OutOfRangeError{Field: k.name, Value: token, Reason: "non-integer range end"}
			}
		} else {
			start, err = strconv.Atoi(before)
			if err != nil {
				return false, &OutOfRangeError{Field: k.name, Value: token, Reason: "non-integer value"}
			}
			end = k.rangeEnd
		}
	}
	if start < k.rangeStart || end > k.rangeEnd || start > end {
		return false, &OutOfRangeError{Field: k.name, Value: token, Reason: "range bounds invalid"}
	}

	full := k.fullRange()
	n := len(full)
	if step >= (k.rangeEnd - k.rangeStart) {
		idx := step % n
		return scalar == full[idx], nil
	}

	for v := start; v <= end; v += step {
		if v == scalar {
			return true, nil
		}
	}
	return false, nil
}

// rangeForExpression returns the concrete, ascending enumeration of the
// values a token matches within the field's own range. It is used by the
// minute field's skip-aware increment to jump directly to the next (or
// previous) eligible minute instead of stepping one minute at a time.
func (k kernel) rangeForExpression(token string) []int {
	var out []int
	for _, sub := range strings.Split(token, ",") {
		for v := k.rangeStart; v <= k.rangeEnd; v++ {
			if k.isSatisfied(v, sub) {
				out = append(out, v)
			}
		}
	}
	out = sortUnique(out)
	return out
}

func sortUnique(vals []int) []int {
	seen := make(map[int]bool, len(vals))
	out := vals[:0:0]
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// matchesAny splits token on "," and reports whether scalar satisfies
// any one subtoken, per spec.md §4.1 ("Lists are handled one step up by
// splitting on ','").
func (k kernel) matchesAny(scalar int, token string) bool {
	for _, sub := range strings.Split(token, ",") {
		if k.isSatisfied(scalar, sub) {
			return true
		}
	}
	return false
}

// validateList validates every comma-separated subtoken with validateFn.
func validateList(token string, validateFn func(string) error) error {
	for _, sub := range strings.Split(token, ",") {
		if err := validateFn(sub); err != nil {
			return err
		}
	}
	return nil
}
