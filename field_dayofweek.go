package cronexpr

import (
	"strconv"
	"strings"
	"time"
)

// dayOfWeekField is the day-of-week position (0-7, literals MON..SUN,
// both 0 and 7 denoting Sunday) of a cron expression, extended with the
// `?`, `<n>L` (last weekday), and `<n>#<k>` (nth weekday) tokens.
type dayOfWeekField struct{ k kernel }

func newDayOfWeekField() dayOfWeekField {
	return dayOfWeekField{k: kernel{name: "day-of-week", rangeStart: 0, rangeEnd: 7, literals: weekdayLiterals}}
}

func (f dayOfWeekField) fieldName() string { return f.k.name }

// trimLastWeekday reports whether raw token (before literal conversion)
// has the form "<n>L" or "<NAME>L", returning the prefix. It must run
// before convertLiterals, since convertLiterals treats "FRIL" as one
// unconvertible maximal letter run otherwise.
func trimLastWeekday(token string) (prefix string, ok bool) {
	if len(token) < 2 || token[len(token)-1] != 'L' {
		return "", false
	}
	prefix = token[:len(token)-1]
	if prefix == "" {
		return "", false
	}
	return prefix, true
}

// weekdayValueNumbers extracts the integer value(s) a subtoken
// addresses (its range endpoints or single value), ignoring any step
// divisor — used only to decide whether a literal "7" appears among the
// *values*, not the step count.
func weekdayValueNumbers(token string) []int {
	lhs := token
	if before, _, ok := strings.Cut(token, "/"); ok {
		lhs = before
	}
	var nums []int
	if before, after, ok := strings.Cut(lhs, "-"); ok {
		if v, err := strconv.Atoi(before); err == nil {
			nums = append(nums, v)
		}
		if v, err := strconv.Atoi(after); err == nil {
			nums = append(nums, v)
		}
	} else if v, err := strconv.Atoi(lhs); err == nil {
		nums = append(nums, v)
	}
	return nums
}

func hasLiteralSeven(token string) bool {
	for _, n := range weekdayValueNumbers(token) {
		if n == 7 {
			return true
		}
	}
	return false
}

// rewriteWrapRange implements spec.md §4.6's range rewrite: a range
// whose left endpoint is the literal 7 is rewritten to 0, and one whose
// right endpoint is the literal 0 is rewritten to 7, so ranges like
// "6-0" (Saturday through Sunday) stay monotone ("6-7") instead of
// appearing to run backwards.
func rewriteWrapRange(token string) string {
	lhs, stepSuffix, hasStep := strings.Cut(token, "/")
	if before, after, ok := strings.Cut(lhs, "-"); ok {
		if before == "7" {
			before = "0"
		}
		if after == "0" {
			after = "7"
		}
		lhs = before + "-" + after
	}
	if hasStep {
		return lhs + "/" + stepSuffix
	}
	return lhs
}

func isoWeekday(t time.Time) int {
	return ((int(t.Weekday()) + 6) % 7) + 1
}

func (f dayOfWeekField) validate(token string) error {
	if token == "?" {
		return nil
	}
	if token == "L" {
		return &InvalidValueError{
			Position: 4, Field: f.k.name, Token: token,
			Reason: "bare L is not valid for day-of-week; use <weekday>L",
		}
	}
	if prefix, ok := trimLastWeekday(token); ok {
		return f.k.validateRangeOrValue(f.k.convertLiterals(prefix))
	}

	converted := f.k.convertLiterals(token)

	if left, kStr, ok := strings.Cut(converted, "#"); ok {
		n, err := strconv.Atoi(left)
		if err != nil || n < 0 || n > 7 {
			return &InvalidHashError{Value: token, Reason: "weekday must be 1..7 (got " + left + ")"}
		}
		k, err := strconv.Atoi(kStr)
		if err != nil || k < 1 || k > 5 {
			return &InvalidHashError{Value: token, Reason: "nth occurrence must be 1..5 (got " + kStr + ")"}
		}
		return nil
	}

	if strings.Contains(converted, "L") {
		return &InvalidValueError{
			Position: 4, Field: f.k.name, Token: token,
			Reason: "L must be used as <weekday>L",
		}
	}

	return validateList(converted, func(sub string) error {
		return f.k.validateNumeric(rewriteWrapRange(sub))
	})
}

func (f dayOfWeekField) isSatisfiedBy(t time.Time, token string) bool {
	if token == "?" {
		return true
	}
	if prefix, ok := trimLastWeekday(token); ok {
		n, err := strconv.Atoi(f.k.convertLiterals(prefix))
		if err != nil {
			return false
		}
		wd := time.Weekday(n % 7)
		return t.Day() == lastWeekdayOfMonth(t.Year(), t.Month(), wd)
	}

	converted := f.k.convertLiterals(token)

	if left, kStr, ok := strings.Cut(converted, "#"); ok {
		n, err := strconv.Atoi(left)
		if err != nil {
			return false
		}
		k, err := strconv.Atoi(kStr)
		if err != nil {
			return false
		}
		wd := time.Weekday(n % 7)
		day, ok := nthWeekdayOfMonth(t.Year(), t.Month(), wd, k)
		return ok && t.Day() == day
	}

	for _, sub := range strings.Split(converted, ",") {
		rewritten := rewriteWrapRange(sub)
		scalar := int(t.Weekday())
		if hasLiteralSeven(rewritten) {
			scalar = isoWeekday(t)
		}
		if f.k.isSatisfied(scalar, rewritten) {
			return true
		}
	}
	return false
}

// increment advances (or retreats) the cursor by one day, zeroing the
// time component, mirroring the day-of-month field.
func (f dayOfWeekField) increment(c *time.Time, invert bool, token string) {
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
