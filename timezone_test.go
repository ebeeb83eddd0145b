package cronexpr

import (
	"testing"
	"time"
)

func TestNormalizeInstantNilUsesNow(t *testing.T) {
	got, err := normalizeInstant(nil, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", got.Location())
	}
	if got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("expected seconds/nanoseconds zeroed, got %v", got)
	}
}

func TestNormalizeInstantZonedTimeWins(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	in := time.Date(2020, 5, 1, 9, 30, 15, 0, tokyo)
	got, err := normalizeInstant(in, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location() != tokyo {
		t.Errorf("expected input's own zone to be used, got %v", got.Location())
	}
	if got.Hour() != 9 || got.Minute() != 30 || got.Second() != 0 {
		t.Errorf("unexpected clock: %v", got)
	}
}

func TestNormalizeInstantExplicitZoneOverridesInput(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	in := time.Date(2020, 5, 1, 9, 30, 15, 0, time.UTC)
	got, err := normalizeInstant(in, tokyo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location() != tokyo {
		t.Errorf("expected explicit zone to win, got %v", got.Location())
	}
	want := in.In(tokyo)
	if got.Hour() != want.Hour() || got.Minute() != want.Minute() {
		t.Errorf("got %v, want clock matching %v", got, want)
	}
}

func TestNormalizeInstantNaiveStringReinterpretedInTargetZone(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	got, err := normalizeInstant("2008-11-09 00:00:00", newYork)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location() != newYork {
		t.Errorf("expected %v, got %v", newYork, got.Location())
	}
	if got.Year() != 2008 || got.Month() != time.November || got.Day() != 9 || got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("expected wall clock 2008-11-09 00:00, got %v", got)
	}
}

func TestNormalizeInstantOffsetStringCarriesItsOwnZone(t *testing.T) {
	got, err := normalizeInstant("2017-10-17T10:00:00+01:00", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 10 || got.Minute() != 0 {
		t.Errorf("expected 10:00, got %v", got)
	}
	_, offset := got.Zone()
	if offset != 3600 {
		t.Errorf("expected +01:00 offset (3600s), got %ds", offset)
	}
}

func TestNormalizeInstantUnixString(t *testing.T) {
	got, err := normalizeInstant("@1508151600", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Unix() != 1508151600 {
		t.Errorf("Unix() = %d, want 1508151600", got.Unix())
	}
}

func TestNormalizeInstantRejectsUnsupportedType(t *testing.T) {
	if _, err := normalizeInstant(42, nil); err == nil {
		t.Error("expected an error for an unsupported instant type")
	}
}

func TestNormalizeInstantRejectsGarbageString(t *testing.T) {
	if _, err := normalizeInstant("not a date", nil); err == nil {
		t.Error("expected an error for an unparseable instant string")
	}
}
