package jobrunner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcward/cronexpr"
	"github.com/arcward/cronexpr/jobstore"
)

func TestScheduledJobExecuteSuccess(t *testing.T) {
	expr, err := cronexpr.Parse("* * * * *")
	require.NoError(t, err)

	store := jobstore.NewMemoryStore()
	job := jobstore.Job{Name: "ping", Expression: "* * * * *"}
	require.NoError(t, store.Add(context.Background(), job))

	var dispatched int
	dispatcher := func(ctx context.Context, j jobstore.Job, tick time.Time) error {
		dispatched++
		return nil
	}

	sj := NewScheduledJob(job, expr, time.UTC, store, nil, ScheduledJobOptions{}, dispatcher)
	sj.execute(context.Background(), time.Now())

	assert.Equal(t, 1, dispatched)
	assert.Equal(t, int64(1), sj.Runs.Load())
	assert.Equal(t, int64(0), sj.ConsecutiveFailures.Load())
	require.Len(t, sj.Runtimes(), 1)
	assert.NoError(t, sj.Runtimes()[0].Error)
}

func TestScheduledJobExecuteFailureStopsAfterMax(t *testing.T) {
	expr, err := cronexpr.Parse("* * * * *")
	require.NoError(t, err)

	store := jobstore.NewMemoryStore()
	job := jobstore.Job{Name: "flaky", Expression: "* * * * *"}
	require.NoError(t, store.Add(context.Background(), job))

	boom := errors.New("boom")
	dispatcher := func(ctx context.Context, j jobstore.Job, tick time.Time) error {
		return boom
	}

	sj := NewScheduledJob(job, expr, time.UTC, store, nil,
		ScheduledJobOptions{MaxConsecutiveFailures: 2}, dispatcher)

	sj.execute(context.Background(), time.Now())
	sj.execute(context.Background(), time.Now())

	assert.Equal(t, int64(2), sj.ConsecutiveFailures.Load())
	select {
	case <-sj.stopCh:
	default:
		t.Fatal("expected stop signal after reaching MaxConsecutiveFailures")
	}
}

func TestScheduledJobSuspendResume(t *testing.T) {
	expr, err := cronexpr.Parse("* * * * *")
	require.NoError(t, err)
	store := jobstore.NewMemoryStore()
	job := jobstore.Job{Name: "x"}
	sj := NewScheduledJob(job, expr, time.UTC, store, nil, ScheduledJobOptions{},
		func(ctx context.Context, j jobstore.Job, tick time.Time) error { return nil })

	sj.state.Store(int64(ScheduleStarted))
	assert.True(t, sj.Suspend())
	assert.Equal(t, ScheduleSuspended, sj.State())
	assert.True(t, sj.Resume())
	assert.Equal(t, ScheduleStarted, sj.State())
}
