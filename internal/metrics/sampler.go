package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// DefaultSampleInterval is how often the sampler refreshes the gauges.
const DefaultSampleInterval = 5 * time.Second

// ConnStats reports the connection pool counts the sampler publishes.
type ConnStats interface {
	ActiveCount() int32
	IdleCount() int32
}

// LoadFunc returns system CPU and memory usage in percent.
type LoadFunc func(ctx context.Context) (cpuPercent, memPercent float64, err error)

// Sampler periodically copies pool counts, uptime and system load into gauges.
type Sampler struct {
	conns    ConnStats
	load     LoadFunc
	clock    clockwork.Clock
	interval time.Duration
	started  time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSampler creates a sampler that reads system load through gopsutil.
func NewSampler(conns ConnStats, interval time.Duration) *Sampler {
	return NewSamplerWithClock(conns, interval, clockwork.NewRealClock(), SystemLoad)
}

// NewSamplerWithClock creates a sampler driven by the given clock and load source.
func NewSamplerWithClock(conns ConnStats, interval time.Duration, clock clockwork.Clock, load LoadFunc) *Sampler {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	return &Sampler{
		conns:    conns,
		load:     load,
		clock:    clock,
		interval: interval,
		started:  clock.Now(),
	}
}

// Start launches the sampling goroutine. It stops when ctx is cancelled or
// Stop is called.
func (s *Sampler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.run(ctx)
}

// Stop cancels the sampling goroutine and waits for it to exit.
func (s *Sampler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Sampler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sample(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.Sample(ctx)
		}
	}
}

// Sample refreshes every gauge once.
func (s *Sampler) Sample(ctx context.Context) {
	if s.conns != nil {
		DBActiveConnections.Set(float64(s.conns.ActiveCount()))
		DBIdleConnections.Set(float64(s.conns.IdleCount()))
	}
	ProcessUptime.Set(s.clock.Since(s.started).Seconds())

	if s.load == nil {
		return
	}
	cpuPct, memPct, err := s.load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error updating system metrics")
		return
	}
	CPUUsagePercent.Set(cpuPct)
	MemoryUsagePercent.Set(memPct)
}

// SystemLoad reads host CPU and memory usage. The CPU figure is measured since
// the previous call, so it does not block.
func SystemLoad(ctx context.Context) (float64, float64, error) {
	cpuPcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, 0, err
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	var cpuPct float64
	if len(cpuPcts) > 0 {
		cpuPct = cpuPcts[0]
	}
	return cpuPct, vm.UsedPercent, nil
}
