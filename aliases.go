package cronexpr

// Cron macros, resolved to their five-field equivalent before parsing.
const (
	Yearly   = "@yearly"
	Annually = "@annually"
	Monthly  = "@monthly"
	Weekly   = "@weekly"
	Daily    = "@daily"
	Midnight = "@midnight"
	Hourly   = "@hourly"
)

var aliases = map[string]string{
	Yearly:   "0 0 1 1 *",
	Annually: "0 0 1 1 *",
	Monthly:  "0 0 1 * *",
	Weekly:   "0 0 * * 0",
	Daily:    "0 0 * * *",
	Midnight: "0 0 * * *",
	Hourly:   "0 * * * *",
}

// resolveAlias returns the five-field expression the macro expands to,
// or expr unchanged if it isn't a recognized macro.
func resolveAlias(expr string) string {
	if expanded, ok := aliases[expr]; ok {
		return expanded
	}
	return expr
}
