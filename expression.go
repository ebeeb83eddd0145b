package cronexpr

import (
	"strconv"
	"strings"
	"time"
)

// Field positions within a parsed Expression.
const (
	minutePos int = iota
	hourPos
	dayOfMonthPos
	monthPos
	dayOfWeekPos
	numFields
)

// searchOrder evaluates the coarsest calendar component first, per
// spec.md §4.7: incrementing a coarser unit can re-invalidate a finer
// one, so month must settle before day-of-month/day-of-week, which must
// settle before hour, which must settle before minute.
var searchOrder = [numFields]int{monthPos, dayOfMonthPos, dayOfWeekPos, hourPos, minutePos}

const defaultMaxIterationCount = 1000

// Expression is a parsed, validated five-field cron expression. SetPart
// returns a new Expression rather than mutating the receiver; the sole
// exception is SetMaxIterationCount, which adjusts the receiver's
// convergence bound in place since it tunes the search loop rather than
// the schedule it expresses.
type Expression struct {
	parts             [numFields]string
	fields            [numFields]field
	maxIterationCount int
}

func newFields() [numFields]field {
	return [numFields]field{
		minutePos:     newMinuteField(),
		hourPos:       newHourField(),
		dayOfMonthPos: newDayOfMonthField(),
		monthPos:      newMonthField(),
		dayOfWeekPos:  newDayOfWeekField(),
	}
}

// Parse resolves macros, splits expr on whitespace, and validates each
// of the five tokens against its field. A sixth (year) field, or fewer
// than five fields, is rejected.
func Parse(expr string) (*Expression, error) {
	resolved := resolveAlias(strings.TrimSpace(expr))
	tokens := strings.Fields(resolved)
	if len(tokens) != numFields {
		return nil, &ParseError{
			Expression: expr,
			Reason:     "expected 5 whitespace-delimited fields, got " + strconv.Itoa(len(tokens)),
		}
	}

	e := &Expression{
		fields:            newFields(),
		maxIterationCount: defaultMaxIterationCount,
	}
	for i, tok := range tokens {
		if err := e.fields[i].validate(tok); err != nil {
			return nil, err
		}
		e.parts[i] = tok
	}
	return e, nil
}

// IsValidExpression reports whether expr parses without error.
func IsValidExpression(expr string) bool {
	_, err := Parse(expr)
	return err == nil
}

// String renders the expression with its whitespace normalized to
// single spaces.
func (e *Expression) String() string {
	return strings.Join(e.parts[:], " ")
}

// SetPart validates token against the field at position and returns a
// new Expression with that part replaced, leaving the receiver intact.
func (e *Expression) SetPart(position int, token string) (*Expression, error) {
	if position < 0 || position >= numFields {
		return nil, &InvalidFieldError{Position: position}
	}
	if err := e.fields[position].validate(token); err != nil {
		return nil, err
	}
	next := &Expression{
		parts:             e.parts,
		fields:            e.fields,
		maxIterationCount: e.maxIterationCount,
	}
	next.parts[position] = token
	return next, nil
}

// SetMaxIterationCount overrides the search loop's convergence bound
// (default 1000). Sparse schedules like a single yearly date may need a
// larger cap; see spec.md §8 boundary scenario 4.
func (e *Expression) SetMaxIterationCount(n int) {
	if n > 0 {
		e.maxIterationCount = n
	}
}

// NextRunDate returns the nth (0-indexed) firing instant at or after
// instant, resolved in zone per the precedence rules in timezone.go.
func (e *Expression) NextRunDate(instant any, nth int, allowCurrent bool, zone *time.Location) (time.Time, error) {
	start, err := normalizeInstant(instant, zone)
	if err != nil {
		return time.Time{}, err
	}
	return e.search(start, nth, allowCurrent, false)
}

// PreviousRunDate returns the nth (0-indexed) firing instant at or
// before instant.
func (e *Expression) PreviousRunDate(instant any, nth int, allowCurrent bool, zone *time.Location) (time.Time, error) {
	start, err := normalizeInstant(instant, zone)
	if err != nil {
		return time.Time{}, err
	}
	return e.search(start, nth, allowCurrent, true)
}

// MultipleRunDates returns up to count results by invoking the search
// count times with nth=0..count-1 from the same start. If the search
// raises Infeasible partway through, the results gathered so far are
// returned without error.
func (e *Expression) MultipleRunDates(
	count int, instant any, invert bool, allowCurrent bool, zone *time.Location,
) ([]time.Time, error) {
	start, err := normalizeInstant(instant, zone)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, count)
	for nth := 0; nth < count; nth++ {
		var next time.Time
		var serr error
		if invert {
			next, serr = e.search(start, nth, allowCurrent, true)
		} else {
			next, serr = e.search(start, nth, allowCurrent, false)
		}
		if serr != nil {
			return out, nil
		}
		out = append(out, next)
	}
	return out, nil
}

// IsDue reports whether instant, normalized and zeroed to the minute,
// is itself a firing instant.
func (e *Expression) IsDue(instant any, zone *time.Location) bool {
	start, err := normalizeInstant(instant, zone)
	if err != nil {
		return false
	}
	next, err := e.search(start, 0, true, false)
	if err != nil {
		return false
	}
	return next.Equal(start)
}
