package metrics

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConns struct {
	active atomic.Int32
	idle   atomic.Int32
}

func (f *fakeConns) ActiveCount() int32 { return f.active.Load() }
func (f *fakeConns) IdleCount() int32   { return f.idle.Load() }

func fixedLoad(cpu, mem float64) LoadFunc {
	return func(context.Context) (float64, float64, error) { return cpu, mem, nil }
}

func TestSampler_Sample(t *testing.T) {
	clock := clockwork.NewFakeClock()
	conns := &fakeConns{}
	conns.active.Store(3)
	conns.idle.Store(2)

	s := NewSamplerWithClock(conns, time.Second, clock, fixedLoad(12.5, 40))
	clock.Advance(90 * time.Second)
	s.Sample(context.Background())

	assert.Equal(t, 3.0, testutil.ToFloat64(DBActiveConnections))
	assert.Equal(t, 2.0, testutil.ToFloat64(DBIdleConnections))
	assert.Equal(t, 90.0, testutil.ToFloat64(ProcessUptime))
	assert.Equal(t, 12.5, testutil.ToFloat64(CPUUsagePercent))
	assert.Equal(t, 40.0, testutil.ToFloat64(MemoryUsagePercent))
}

func TestSampler_LoadErrorKeepsPreviousValues(t *testing.T) {
	clock := clockwork.NewFakeClock()
	CPUUsagePercent.Set(7)
	MemoryUsagePercent.Set(8)

	s := NewSamplerWithClock(nil, time.Second, clock, func(context.Context) (float64, float64, error) {
		return 0, 0, errors.New("no /proc")
	})
	s.Sample(context.Background())

	assert.Equal(t, 7.0, testutil.ToFloat64(CPUUsagePercent))
	assert.Equal(t, 8.0, testutil.ToFloat64(MemoryUsagePercent))
}

func TestSampler_StartTicksOnClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	conns := &fakeConns{}
	conns.active.Store(1)

	s := NewSamplerWithClock(conns, 5*time.Second, clock, fixedLoad(1, 1))
	s.Start(context.Background())
	defer s.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	// The first sample is taken immediately.
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(DBActiveConnections) == 1
	}, time.Second, 5*time.Millisecond)

	conns.active.Store(4)
	clock.Advance(5 * time.Second)

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(DBActiveConnections) == 4 &&
			testutil.ToFloat64(ProcessUptime) == 5
	}, time.Second, 5*time.Millisecond)
}

func TestSampler_StopWithoutStart(t *testing.T) {
	s := NewSampler(nil, 0)
	assert.Equal(t, DefaultSampleInterval, s.interval)
	s.Stop()
}

func TestSampler_StopsWithContext(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSamplerWithClock(nil, time.Second, clock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sampler did not stop")
	}
}
