package cronexpr

import (
	"strconv"
	"strings"
	"time"
)

// naiveLayouts are tried, in order, against instant strings that carry
// no zone or offset information.
var naiveLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// zonedLayouts are tried against instant strings that do carry an
// explicit offset or zone designator.
var zonedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z0700",
}

// normalizeInstant resolves instant (nil, a string, or a time.Time) into
// a zoned cursor at minute precision with seconds zeroed, per spec.md
// §4.8's resolution rules:
//
//  1. An explicit zone argument always wins.
//  2. Otherwise, a zone carried by the input is used.
//  3. Otherwise, the host's default zone (time.Local) is used.
//
// The caller-owned input is never mutated; normalizeInstant only reads
// its components and constructs a fresh time.Time.
func normalizeInstant(instant any, zone *time.Location) (time.Time, error) {
	parsed, hasZone, err := resolveInstant(instant)
	if err != nil {
		return time.Time{}, err
	}

	target := time.Local
	switch {
	case zone != nil:
		target = zone
	case hasZone:
		target = parsed.Location()
	}

	var cursor time.Time
	if hasZone {
		cursor = parsed.In(target)
	} else {
		y, mo, d := parsed.Date()
		h, mi, s := parsed.Clock()
		cursor = time.Date(y, mo, d, h, mi, s, 0, target)
	}

	y, mo, d := cursor.Date()
	h, mi, _ := cursor.Clock()
	return time.Date(y, mo, d, h, mi, 0, 0, target), nil
}

// resolveInstant classifies and parses instant, reporting whether it
// carries its own zone (nil, meaning the current instant, a zoned
// time.Time, a `@<unix>` string, or a string with an explicit offset)
// as opposed to a naive wall-clock reading that must be reinterpreted
// in the target zone.
func resolveInstant(instant any) (t time.Time, hasZone bool, err error) {
	switch v := instant.(type) {
	case nil:
		return time.Now(), true, nil
	case time.Time:
		return v, true, nil
	case string:
		return parseInstantString(v)
	default:
		return time.Time{}, false, &ParseError{
			Expression: "",
			Reason:     "unsupported instant type, expected nil, string, or time.Time",
		}
	}
}

func parseInstantString(s string) (time.Time, bool, error) {
	if strings.HasPrefix(s, "@") {
		secs, err := strconv.ParseInt(s[1:], 10, 64)
		if err != nil {
			return time.Time{}, false, &ParseError{Expression: s, Reason: "invalid @unix instant"}
		}
		return time.Unix(secs, 0).UTC(), true, nil
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, &ParseError{Expression: s, Reason: "unrecognized instant format"}
}
