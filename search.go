package cronexpr

import "time"

// search implements the position-major convergence algorithm of
// spec.md §4.7: scan the active fields coarsest-first; the first field
// that fails its satisfaction test increments the cursor and the scan
// restarts from the top, since bumping a coarser field can re-invalidate
// a finer one already checked. Once every field agrees, the
// start-equality rule and nth-skip logic decide whether to accept the
// cursor or keep stepping.
func (e *Expression) search(start time.Time, nth int, allowCurrent bool, invert bool) (time.Time, error) {
	cursor := start
	remaining := nth

	for i := 0; i < e.maxIterationCount; i++ {
		matched := true
		for _, pos := range searchOrder {
			fld := e.fields[pos]
			token := e.parts[pos]
			if !fld.isSatisfiedBy(cursor, token) {
				fld.increment(&cursor, invert, token)
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		// The start-equality clause is checked first and, per spec.md
		// §4.7's short-circuiting "or", never touches remaining: the
		// free step past the start instant does not consume a skip.
		if !allowCurrent && cursor.Equal(start) {
			e.fields[minutePos].increment(&cursor, invert, e.parts[minutePos])
			continue
		}
		if remaining > 0 {
			remaining--
			e.fields[minutePos].increment(&cursor, invert, e.parts[minutePos])
			continue
		}
		return cursor, nil
	}
	return time.Time{}, &InfeasibleError{Expression: e.String(), Iterations: e.maxIterationCount}
}
