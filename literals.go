package cronexpr

// Named-literal tables substituted for integers before numeric
// validation, per spec.md §4.1 convertLiterals. Month and day-of-week
// are the only fields that carry literals.

var monthLiterals = map[string]int{
	"JAN": 1,
	"FEB": 2,
	"MAR": 3,
	"APR": 4,
	"MAY": 5,
	"JUN": 6,
	"JUL": 7,
	"AUG": 8,
	"SEP": 9,
	"OCT": 10,
	"NOV": 11,
	"DEC": 12,
}

// weekdayLiterals maps three-letter names to the 0-6 (Sunday-based)
// canonical values used throughout the day-of-week field. "7" (ISO
// Sunday) is handled separately by the range/hash rewriting rules in
// field_dayofweek.go, since literals never spell it as "7".
var weekdayLiterals = map[string]int{
	"SUN": 0,
	"MON": 1,
	"TUE": 2,
	"WED": 3,
	"THU": 4,
	"FRI": 5,
	"SAT": 6,
}
