/*
Package cronexpr parses cron expressions, evaluates whether they are
due at a given instant, and walks forward or backward to their
neighboring firing instants.

# Syntax

Five whitespace-delimited fields: minute (0-59), hour (0-23),
day-of-month (1-31), month (1-12), day-of-week (0-7, 0 and 7 both
meaning Sunday). Months and weekdays may be written by name (JAN..DEC,
SUN..SAT) or by number.

Supported per-field grammar: `*` (any value), `?` (any value; accepted
on every field), `a-b` (inclusive range), `expr/s` (step), `v1,v2,...`
(list). Day-of-month additionally accepts `L` (last day of month) and
`<n>W` (nearest weekday to day n). Day-of-week additionally accepts
`<n>L`/`<NAME>L` (last weekday of the month) and `<n>#<k>`/`<NAME>#<k>`
(the k-th weekday of the month, k in 1..5).

Cron macros:

	@yearly (or @annually) - 0 0 1 1 *
	@monthly                - 0 0 1 * *
	@weekly                 - 0 0 * * 0
	@daily (or @midnight)   - 0 0 * * *
	@hourly                 - 0 * * * *

# Search bound

nextRunDate and previousRunDate converge within a configurable
iteration cap (default 1000, see Expression.SetMaxIterationCount).
Expressions that can never fire (February 31st) surface an
InfeasibleError instead of looping forever.

# Timezones

Instants may be passed as a zoned time.Time, a naive or offset-bearing
string, or a `@<unix>` string; see normalizeInstant for the zone
resolution precedence.
*/
package cronexpr
