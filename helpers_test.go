package cronexpr

import (
	"strings"
	"testing"
)

// assertEqual fails the test with a diagnostic showing both sides when
// val and expected diverge.
func assertEqual[V comparable](t testing.TB, val V, expected V) {
	t.Helper()
	if val == expected {
		return
	}
	t.Errorf("expected %v, got %v", expected, val)
}

// slicesEqual reports whether val and expect hold the same ints in the
// same order.
func slicesEqual(t testing.TB, val []int, expect []int) bool {
	t.Helper()
	if len(val) != len(expect) {
		return false
	}
	for i, v := range val {
		if v != expect[i] {
			return false
		}
	}
	return true
}

// requireErr fails the test immediately when err is nil, reporting msg
// as additional context.
func requireErr(t testing.TB, err error, msg ...string) {
	t.Helper()
	if err != nil {
		return
	}
	t.Fatalf("expected error (%s)", strings.Join(msg, "- \n"))
}
