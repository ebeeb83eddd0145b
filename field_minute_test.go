package cronexpr

import (
	"testing"
	"time"
)

// spec.md §4.2: the minute field jumps directly to the next concrete
// minute in the token's set rather than stepping one minute at a time.
func TestMinuteFieldIncrementSkipsToNextValue(t *testing.T) {
	f := newMinuteField()
	c := time.Date(2020, 1, 1, 10, 12, 0, 0, time.UTC)
	f.increment(&c, false, "0,15,30,45")
	want := time.Date(2020, 1, 1, 10, 15, 0, 0, time.UTC)
	if !c.Equal(want) {
		t.Errorf("increment forward = %v, want %v", c, want)
	}
}

// Wrapping past the last element in the set rolls the hour forward and
// snaps the minute to the set's first element.
func TestMinuteFieldIncrementWrapsHourForward(t *testing.T) {
	f := newMinuteField()
	c := time.Date(2020, 1, 1, 10, 50, 0, 0, time.UTC)
	f.increment(&c, false, "0,15,30,45")
	want := time.Date(2020, 1, 1, 11, 0, 0, 0, time.UTC)
	if !c.Equal(want) {
		t.Errorf("increment forward wrap = %v, want %v", c, want)
	}
}

func TestMinuteFieldIncrementInvertSkipsToPreviousValue(t *testing.T) {
	f := newMinuteField()
	c := time.Date(2020, 1, 1, 10, 40, 0, 0, time.UTC)
	f.increment(&c, true, "0,15,30,45")
	want := time.Date(2020, 1, 1, 10, 30, 0, 0, time.UTC)
	if !c.Equal(want) {
		t.Errorf("increment backward = %v, want %v", c, want)
	}
}

func TestMinuteFieldIncrementInvertWrapsHourBackward(t *testing.T) {
	f := newMinuteField()
	c := time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)
	f.increment(&c, true, "15,30,45")
	want := time.Date(2020, 1, 1, 9, 45, 0, 0, time.UTC)
	if !c.Equal(want) {
		t.Errorf("increment backward wrap = %v, want %v", c, want)
	}
}

func TestMinuteFieldIncrementPlainWildcard(t *testing.T) {
	f := newMinuteField()
	c := time.Date(2020, 1, 1, 10, 30, 0, 0, time.UTC)
	f.increment(&c, false, "*")
	want := time.Date(2020, 1, 1, 10, 31, 0, 0, time.UTC)
	if !c.Equal(want) {
		t.Errorf("increment * = %v, want %v", c, want)
	}
}
