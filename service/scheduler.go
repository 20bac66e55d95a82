package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Scheduler calls a cycle func, then sleeps for a fixed interval, until its
// context is cancelled. A failed cycle is logged and retried on the next tick.
type Scheduler struct {
	cycle    func(ctx context.Context) error
	interval time.Duration
	logger   log.Logger
}

// NewScheduler creates a Scheduler. Panics on nil cycle or logger and on a non-positive interval.
func NewScheduler(cycle func(ctx context.Context) error, interval time.Duration, logger log.Logger) *Scheduler {
	if interval <= 0 {
		panic("service.scheduler.go: interval must be positive")
	}
	logger = NilPanic(logger, "service.scheduler.go: logger is required")
	return &Scheduler{
		cycle:    NilPanic(cycle, "service.scheduler.go: cycle is required"),
		interval: interval,
		logger:   log.WithPrefix(logger, "component", "Scheduler"),
	}
}

// Run executes the first cycle immediately. It returns ctx.Err() once ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		err := s.cycle(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			level.Error(s.logger).Log("msg", "Scraping failed", "err", err)
		}

		level.Info(s.logger).Log("msg", fmt.Sprintf("Next scraping in %s", s.interval))

		timer := time.NewTimer(s.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
