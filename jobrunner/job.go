package jobrunner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arcward/cronexpr"

	"github.com/arcward/cronexpr/jobstore"
)

type ScheduleState int64

const (
	ScheduleStarted ScheduleState = iota + 1
	ScheduleSuspended
	ScheduleStopped
)

// Dispatcher runs a job's command when it comes due. Implementations
// typically shell out to job.Command or invoke a registered callable.
type Dispatcher func(ctx context.Context, job jobstore.Job, tick time.Time) error

type ScheduledJobOptions struct {
	// MaxConcurrent bounds concurrent dispatches of this job. 0=unbounded.
	MaxConcurrent int

	// TickerReceiveTimeout bounds how long the ticker waits for a
	// dispatch to accept a tick before dropping it.
	TickerReceiveTimeout time.Duration

	// MaxFailures stops the job after this many dispatch failures.
	// 0=no limit.
	MaxFailures int

	// MaxConsecutiveFailures stops the job after this many consecutive
	// dispatch failures. 0=no limit.
	MaxConsecutiveFailures int
}

// ScheduledJob drives one job's dispatches on its Ticker, recording
// runtimes and writing structured log entries through a jobstore.Store.
type ScheduledJob struct {
	job     jobstore.Job
	store   jobstore.Store
	expr    *cronexpr.Expression
	zone    *time.Location
	ticker  *Ticker
	dispatch Dispatcher
	metrics *Metrics

	runtimes []*JobRuntime
	mu       sync.RWMutex
	stopCh   chan struct{}

	Failures             atomic.Int64
	ConsecutiveFailures  atomic.Int64
	Runs                 atomic.Int64
	Running              atomic.Int64

	state             atomic.Int64
	previouslyStarted atomic.Bool
	options           ScheduledJobOptions
}

// NewScheduledJob builds a job driven by expr, dispatched via dispatch,
// with progress logged to store.
func NewScheduledJob(
	job jobstore.Job,
	expr *cronexpr.Expression,
	zone *time.Location,
	store jobstore.Store,
	metrics *Metrics,
	opts ScheduledJobOptions,
	dispatch Dispatcher,
) *ScheduledJob {
	return &ScheduledJob{
		job:      job,
		store:    store,
		expr:     expr,
		zone:     zone,
		dispatch: dispatch,
		metrics:  metrics,
		runtimes: make([]*JobRuntime, 0),
		stopCh:   make(chan struct{}, 1),
		options:  opts,
	}
}

// Start begins ticking and dispatching until ctx is canceled or Stop is
// called. It blocks; run it in its own goroutine.
func (s *ScheduledJob) Start(ctx context.Context) error {
	if ScheduleState(s.state.Load()) == ScheduleStopped {
		return errors.New("jobrunner: cannot start a job that has been stopped")
	}
	if s.previouslyStarted.Load() {
		return errors.New("jobrunner: job has already been started")
	}
	return s.start(ctx)
}

// Stop halts dispatches. A stopped job cannot be restarted.
func (s *ScheduledJob) Stop(ctx context.Context) bool {
	select {
	case <-ctx.Done():
	case s.stopCh <- struct{}{}:
	}
	old := s.state.Swap(int64(ScheduleStopped))
	return old != int64(ScheduleStopped)
}

// Suspend pauses dispatches until Resume is called; ticks still arrive
// but are skipped and logged.
func (s *ScheduledJob) Suspend() bool {
	return s.state.CompareAndSwap(int64(ScheduleStarted), int64(ScheduleSuspended))
}

// Resume resumes dispatches after Suspend.
func (s *ScheduledJob) Resume() bool {
	return s.state.CompareAndSwap(int64(ScheduleSuspended), int64(ScheduleStarted))
}

// Runtimes returns a snapshot of the job's recorded dispatch runtimes.
func (s *ScheduledJob) Runtimes() []*JobRuntime {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*JobRuntime, len(s.runtimes))
	copy(out, s.runtimes)
	return out
}

func (s *ScheduledJob) State() ScheduleState {
	return ScheduleState(s.state.Load())
}

func (s *ScheduledJob) start(ctx context.Context) error {
	s.mu.Lock()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.state.Store(int64(ScheduleStarted))
	s.ticker = NewTicker(ctx, s.expr, s.zone, s.options.TickerReceiveTimeout, s.job.Name, s.metrics)
	defer s.ticker.Stop()
	s.previouslyStarted.Store(true)
	s.mu.Unlock()

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer s.state.Store(int64(ScheduleStopped))
		defer wg.Done()
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			cancel()
			return
		}
	}()

	var jobCh chan time.Time
	if s.options.MaxConcurrent > 0 {
		jobCh = make(chan time.Time)
		defer close(jobCh)
		for i := 0; i < s.options.MaxConcurrent; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					select {
					case <-ctx.Done():
						return
					case rt := <-jobCh:
						s.execute(ctx, rt)
					}
				}
			}()
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case rt := <-s.ticker.C:
				switch {
				case ScheduleState(s.state.Load()) == ScheduleSuspended:
					Logger.Info("execution suspended, skipping tick", "job", s.job.Name, "tick", rt)
					_ = s.store.Log(ctx, s.job, "tick skipped: job suspended", jobstore.LevelInfo)
				case jobCh == nil:
					wg.Add(1)
					go func() {
						defer wg.Done()
						s.execute(ctx, rt)
					}()
				default:
					jobCh <- rt
				}
			}
		}
	}()
	wg.Wait()
	return nil
}

func (s *ScheduledJob) execute(ctx context.Context, rt time.Time) {
	s.Runs.Add(1)
	s.Running.Add(1)
	defer s.Running.Add(-1)

	if s.metrics != nil {
		s.metrics.DispatchesActive.WithLabelValues(s.job.Name).Inc()
		defer s.metrics.DispatchesActive.WithLabelValues(s.job.Name).Dec()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	runtime := &JobRuntime{Start: rt}
	start := time.Now()
	runtime.Error = s.dispatch(ctx, s.job, rt)
	duration := time.Since(start)

	status := "success"
	if runtime.Error == nil {
		s.ConsecutiveFailures.Store(0)
		_ = s.store.Log(ctx, s.job, "dispatch succeeded", jobstore.LevelSuccess)
	} else {
		status = "failure"
		failures := s.Failures.Add(1)
		consecutiveFailures := s.ConsecutiveFailures.Add(1)
		_ = s.store.Log(ctx, s.job, "dispatch failed: "+runtime.Error.Error(), jobstore.LevelError)

		if s.options.MaxFailures > 0 && failures >= int64(s.options.MaxFailures) {
			_ = s.store.Log(ctx, s.job, "max failures reached, stopping job", jobstore.LevelCritical)
			select {
			case s.stopCh <- struct{}{}:
			default:
			}
		} else if s.options.MaxConsecutiveFailures > 0 &&
			consecutiveFailures >= int64(s.options.MaxConsecutiveFailures) {
			_ = s.store.Log(ctx, s.job, "max consecutive failures reached, stopping job", jobstore.LevelCritical)
			select {
			case s.stopCh <- struct{}{}:
			default:
			}
		}
	}

	if s.metrics != nil {
		s.metrics.DispatchesTotal.WithLabelValues(s.job.Name, status).Inc()
		s.metrics.DispatchDuration.WithLabelValues(s.job.Name).Observe(duration.Seconds())
	}

	runtime.End = time.Now()
	s.runtimes = append(s.runtimes, runtime)
}

// JobRuntime records one dispatch's window and outcome.
type JobRuntime struct {
	Start time.Time
	End   time.Time
	Error error
}
