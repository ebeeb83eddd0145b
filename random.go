package cronexpr

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

var macros = []string{Yearly, Annually, Monthly, Weekly, Daily, Midnight, Hourly}

// GenerateRandom produces a random, always-valid cron expression,
// adapted from the host's random-schedule generator and extended to
// occasionally emit the `L`, `W`, and `#` tokens alongside plain
// values, ranges, steps, and lists.
func GenerateRandom(r *rand.Rand) (string, error) {
	if r == nil {
		r = rand.New(rand.NewSource(1))
	}

	if r.Intn(100) == 1 {
		return macros[r.Intn(len(macros))], nil
	}

	fields := make([]string, numFields)
	fields[minutePos] = randomNumericToken(r, 0, 59, 9)
	fields[hourPos] = randomNumericToken(r, 0, 23, 6)
	fields[dayOfMonthPos] = randomDayOfMonth(r)
	fields[monthPos] = randomNumericToken(r, 1, 12, 4)
	fields[dayOfWeekPos] = randomDayOfWeek(r)

	expr := strings.Join(fields, " ")
	if _, err := Parse(expr); err != nil {
		return "", err
	}
	return expr, nil
}

// randomNumericToken returns "*" with odds 1-in-(wildcardBias+1),
// otherwise a value, range, step, or list drawn from [lo, hi].
func randomNumericToken(r *rand.Rand, lo, hi, wildcardBias int) string {
	if r.Intn(wildcardBias+1) == wildcardBias {
		return "*"
	}
	return randomSubtoken(r, lo, hi)
}

func randomSubtoken(r *rand.Rand, lo, hi int) string {
	switch r.Intn(10) {
	case 0, 1:
		start := lo + r.Intn(hi-lo)
		end := start + 1 + r.Intn(hi-start)
		return fmt.Sprintf("%d-%d", start, end)
	case 2:
		step := 1 + r.Intn(hi-lo)
		return fmt.Sprintf("*/%d", step)
	case 3:
		n := 2 + r.Intn(3)
		seen := make(map[int]bool, n)
		vals := make([]string, 0, n)
		for len(vals) < n {
			v := lo + r.Intn(hi-lo+1)
			if seen[v] {
				continue
			}
			seen[v] = true
			vals = append(vals, strconv.Itoa(v))
		}
		return strings.Join(vals, ",")
	default:
		return strconv.Itoa(lo + r.Intn(hi-lo+1))
	}
}

// randomDayOfMonth occasionally emits `L` or `<n>W` instead of the
// plain numeric grammar, mirroring how sparse the extended tokens are
// in real-world schedules.
func randomDayOfMonth(r *rand.Rand) string {
	switch r.Intn(20) {
	case 0:
		return "L"
	case 1:
		return fmt.Sprintf("%dW", 1+r.Intn(28))
	default:
		return randomNumericToken(r, 1, 31, 6)
	}
}

var weekdayNames = []string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// randomDayOfWeek occasionally emits `<NAME>L` or `<NAME>#<k>` instead
// of the plain numeric grammar.
func randomDayOfWeek(r *rand.Rand) string {
	switch r.Intn(20) {
	case 0:
		return weekdayNames[r.Intn(7)] + "L"
	case 1:
		return fmt.Sprintf("%s#%d", weekdayNames[r.Intn(7)], 1+r.Intn(5))
	default:
		return randomNumericToken(r, 0, 6, 1)
	}
}
