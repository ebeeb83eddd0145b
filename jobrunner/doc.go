/*
Package jobrunner drives named cron jobs registered in a jobstore.Store,
ticking each one's cronexpr.Expression and dispatching it through a
caller-supplied Dispatcher.

A ScheduledJob owns one job's Ticker, records each dispatch's runtime
and error, and writes structured progress through the job's Store. A
Metrics instance, registered against a prometheus.Registerer, exposes
dispatch counts, durations, and active-dispatch gauges. An
ExpressionCache avoids re-parsing a job's expression on every tick.

Configuration (ticker receive timeout, concurrency limits, failure
thresholds) loads via LoadConfig, layering built-in defaults, an
optional YAML file, and CRONEXPR_-prefixed environment variables.
*/
package jobrunner
