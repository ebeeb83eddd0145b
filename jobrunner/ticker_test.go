package jobrunner

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/arcward/cronexpr"
)

func TestTickerDeliversExpectedMinute(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	expr, err := cronexpr.Parse("* * * * *")
	require.NoError(t, err)

	ticker := NewTicker(ctx, expr, time.UTC, 5*time.Second, "every-minute", nil)
	require.NotNil(t, ticker)
	defer ticker.Stop()

	nextTick, err := expr.NextRunDate(time.Now().In(time.UTC), 0, false, time.UTC)
	require.NoError(t, err)

	select {
	case <-ctx.Done():
		t.Fatal("expected a tick before the context deadline")
	case tick := <-ticker.C:
		require.True(t, tick.Truncate(time.Minute).Equal(nextTick.Truncate(time.Minute)))
	}
}

func TestTickerCanceledStopsDelivering(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expr, err := cronexpr.Parse("* * * * *")
	require.NoError(t, err)

	ticker := NewTicker(ctx, expr, time.UTC, 5*time.Second, "canceled", nil)
	require.NotNil(t, ticker)
	defer ticker.Stop()

	tctx, tcancel := context.WithCancel(context.Background())
	defer tcancel()
	sawTick := make(chan time.Time, 1)
	go func() {
		select {
		case <-tctx.Done():
			return
		case tick := <-ticker.C:
			sawTick <- tick
		}
	}()

	cancel()
	go func() {
		time.Sleep(500 * time.Millisecond)
		ticker.tick(ctx)
	}()

	select {
	case <-sawTick:
		t.Fatal("expected no tick after the ticker's context was canceled")
	case <-time.After(6 * time.Second):
	}
}

func TestTickerSendTimeoutIncrementsDroppedMetric(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expr, err := cronexpr.Parse("* * * * *")
	require.NoError(t, err)

	metrics := NewMetrics()
	ticker := NewTicker(ctx, expr, time.UTC, 1*time.Second, "slow-receiver", metrics)
	require.NotNil(t, ticker)
	defer ticker.Stop()

	ticker.tick(ctx)
	time.Sleep(3 * time.Second)

	require.Equal(t, int64(1), ticker.ticksDropped.Load())
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.TicksDroppedTotal.WithLabelValues("slow-receiver")))
}
