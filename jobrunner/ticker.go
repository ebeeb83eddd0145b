package jobrunner

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arcward/cronexpr"
)

// Logger used by [Ticker] and [ScheduledJob]. By default, it discards
// all logs; dispatch-level logging goes through a jobstore.Store
// instead.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Ticker sends the current time on its C channel whenever expr is due,
// checked once a minute. It is the minute-granular analogue of
// [time.Ticker], tolerating slow receivers up to sendTimeout before
// dropping a tick.
type Ticker struct {
	expr    *cronexpr.Expression
	zone    *time.Location
	jobName string
	metrics *Metrics
	C       chan time.Time

	tickCh      chan time.Time
	stop        chan struct{}
	sendTimeout time.Duration

	firstTick time.Time
	lastTick  time.Time

	ticksSeen    atomic.Int64
	ticksSent    atomic.Int64
	ticksDropped atomic.Int64
	mu           sync.Mutex
}

// NewTicker starts ticking expr (evaluated in zone, or time.Local if
// nil) against the wall clock. If ctx is canceled, the ticker stops.
// metrics, if non-nil, receives a TicksDroppedTotal increment (labeled
// by jobName) each time a slow receiver misses a tick.
func NewTicker(
	ctx context.Context,
	expr *cronexpr.Expression,
	zone *time.Location,
	sendTimeout time.Duration,
	jobName string,
	metrics *Metrics,
) *Ticker {
	if zone == nil {
		zone = time.Local
	}
	t := &Ticker{
		expr:        expr,
		zone:        zone,
		jobName:     jobName,
		metrics:     metrics,
		C:           make(chan time.Time),
		stop:        make(chan struct{}, 1),
		tickCh:      make(chan time.Time),
		sendTimeout: sendTimeout,
	}

	ctx, cancel := context.WithCancel(ctx)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		wg.Done()
		select {
		case <-t.stop:
			Logger.Debug("ticker stopped, canceling")
			cancel()
		case <-ctx.Done():
			t.Stop()
		}
	}()

	wg.Add(1)
	go func() {
		wg.Done()
		t.tickOnSchedule(ctx)
	}()

	Logger.Debug("waiting for initial tick")
	init := <-t.tickCh
	Logger.Debug("initial tick", "time", init)
	wg.Add(1)
	go func() {
		wg.Done()
		t.run(ctx)
	}()
	wg.Wait()

	return t
}

func (t *Ticker) Stop() {
	select {
	case t.stop <- struct{}{}:
	default:
	}
}

// tickOnSchedule sends a tick when the current time matches the next
// due instant, checked every minute rather than via [time.Ticker] to
// avoid drift.
func (t *Ticker) tickOnSchedule(ctx context.Context) {
	now := time.Now().In(t.zone)
	t.tickCh <- now
	nextTime, err := t.expr.NextRunDate(now.Truncate(time.Minute), 0, false, t.zone)
	if err != nil {
		Logger.Error("could not compute next run date", "error", err)
		return
	}
	sleepDone := make(chan struct{}, 1)
	for ctx.Err() == nil {
		now = time.Now().In(t.zone)
		if timesEqualToMinute(now, nextTime) {
			t.tick(ctx)
			nextTime, err = t.expr.NextRunDate(time.Now().In(t.zone).Truncate(time.Minute), 0, false, t.zone)
			if err != nil {
				Logger.Error("could not compute next run date", "error", err)
				return
			}
		}

		nextMinute := time.Now().Add(time.Minute).Truncate(time.Minute)
		sleepDuration := nextMinute.Sub(time.Now()) + time.Second
		go func() {
			time.Sleep(sleepDuration)
			sleepDone <- struct{}{}
		}()
		select {
		case <-ctx.Done():
			return
		case <-sleepDone:
		}
	}
}

// run waits for ticks on the internal tick channel and forwards them
// on C, dropping a tick if no receiver shows up within sendTimeout.
func (t *Ticker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case currentTick := <-t.tickCh:
			tctx, tcancel := context.WithTimeout(ctx, t.sendTimeout)
			select {
			case t.C <- currentTick:
				t.ticksSent.Add(1)
			case <-tctx.Done():
				t.ticksDropped.Add(1)
				if t.metrics != nil {
					t.metrics.TicksDroppedTotal.WithLabelValues(t.jobName).Inc()
				}
			}
			tcancel()
		}
	}
}

func (t *Ticker) tick(ctx context.Context) bool {
	nt := time.Now().In(t.zone)
	select {
	case <-ctx.Done():
		return false
	case t.tickCh <- nt:
		t.ticksSeen.Add(1)
		t.mu.Lock()
		defer t.mu.Unlock()
		t.lastTick = nt
		if t.firstTick.IsZero() {
			t.firstTick = nt
		}
		return true
	}
}

func (t *Ticker) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("expression", t.expr.String()),
		slog.Group(
			"ticks",
			"seen", t.ticksSeen.Load(),
			"sent", t.ticksSent.Load(),
			"dropped", t.ticksDropped.Load(),
		),
	)
}

func timesEqualToMinute(t1, t2 time.Time) bool {
	return t1.Truncate(time.Minute).Equal(t2.Truncate(time.Minute))
}
