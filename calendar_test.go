package cronexpr

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	type testCase struct {
		year  int
		month time.Month
		want  int
	}
	cases := []testCase{
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2023, time.April, 30},
		{2023, time.December, 31},
	}
	for _, tc := range cases {
		if got := daysInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("daysInMonth(%d, %s) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestNearestWeekday(t *testing.T) {
	// Saturday June 1, 2024 shifts back to Friday May 31.
	got := nearestWeekday(2024, time.June, 1, time.UTC)
	if got.Month() != time.May || got.Day() != 31 {
		t.Errorf("nearestWeekday(2024-06-01) = %v, want 2024-05-31", got)
	}

	// Sunday September 1, 2024 shifts forward to Monday September 2.
	got = nearestWeekday(2024, time.September, 1, time.UTC)
	if got.Month() != time.September || got.Day() != 2 {
		t.Errorf("nearestWeekday(2024-09-01) = %v, want 2024-09-02", got)
	}

	// A weekday is left unchanged.
	got = nearestWeekday(2024, time.June, 5, time.UTC)
	if got.Day() != 5 {
		t.Errorf("nearestWeekday(2024-06-05) = %v, want unchanged", got)
	}
}

func TestLastWeekdayOfMonth(t *testing.T) {
	// Last Friday of January 2024 is the 26th.
	if d := lastWeekdayOfMonth(2024, time.January, time.Friday); d != 26 {
		t.Errorf("lastWeekdayOfMonth(2024-01, Friday) = %d, want 26", d)
	}
}

func TestNthWeekdayOfMonth(t *testing.T) {
	// 2nd Wednesday of January 2024 is the 10th.
	d, ok := nthWeekdayOfMonth(2024, time.January, time.Wednesday, 2)
	if !ok || d != 10 {
		t.Errorf("nthWeekdayOfMonth(2024-01, Wednesday, 2) = %d,%v want 10,true", d, ok)
	}

	// March 2024 has only four Thursdays (7, 14, 21, 28).
	_, ok = nthWeekdayOfMonth(2024, time.March, time.Thursday, 5)
	if ok {
		t.Error("expected no 5th Thursday in March 2024")
	}
}
