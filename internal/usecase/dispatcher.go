package usecase

import (
	"context"
	"sync"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	"MacroPulse/pkg/logger"
)

// Dispatcher hands briefings to the configured sinks. Failures are logged and counted only.
type Dispatcher struct {
	sinks   []drepo.BriefingSink
	metrics drepo.Metrics
	log     *logger.Logger
	timeout time.Duration

	wg sync.WaitGroup
}

// NewDispatcher creates a dispatcher. A nil or empty sink list makes it a no-op.
func NewDispatcher(sinks []drepo.BriefingSink, metrics drepo.Metrics, log *logger.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{sinks: sinks, metrics: metrics, log: log, timeout: timeout}
}

// Len returns the number of sinks.
func (d *Dispatcher) Len() int { return len(d.sinks) }

// Dispatch saves b to every sink and returns the number of failures.
func (d *Dispatcher) Dispatch(ctx context.Context, b *models.Briefing) int {
	failed := 0
	for _, s := range d.sinks {
		start := time.Now()
		if err := s.Save(ctx, b); err != nil {
			failed++
			d.metrics.RecordSinkError(s.Name())
			d.log.Warn("briefing sink failed", logger.String("sink", s.Name()), logger.Error(err))
			continue
		}
		d.log.Debug("briefing delivered",
			logger.String("sink", s.Name()),
			logger.Duration("duration_ms", time.Since(start)),
		)
	}
	return failed
}

// Deliver runs Dispatch bounded by the sink timeout and returns the number of failures.
func (d *Dispatcher) Deliver(ctx context.Context, b *models.Briefing) int {
	if len(d.sinks) == 0 {
		return 0
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.Dispatch(ctx, b)
}

// DispatchAsync runs Deliver in the background, detached from ctx cancellation.
func (d *Dispatcher) DispatchAsync(ctx context.Context, b *models.Briefing) {
	if len(d.sinks) == 0 {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.Deliver(context.WithoutCancel(ctx), b)
	}()
}

// Wait blocks until background dispatches finish. Call it only once no new
// DispatchAsync can start, i.e. after the HTTP server has shut down.
func (d *Dispatcher) Wait() { d.wg.Wait() }
