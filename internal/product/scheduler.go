package product

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler refreshes the product cache on a fixed interval so the
// dashboard stays warm between interactive fetches.
type Scheduler struct {
	cron     *cron.Cron
	orch     *Orchestrator
	interval time.Duration
	opts     FetchOptions
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that refreshes every interval using
// the given fetch options.
func NewScheduler(orch *Orchestrator, interval time.Duration, opts FetchOptions, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:     cron.New(),
		orch:     orch,
		interval: interval,
		opts:     opts,
		logger:   logger,
	}
}

// Start registers the refresh job and starts the cron loop.
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		return fmt.Errorf("scheduling refresh job: %w", err)
	}
	s.cron.Start()
	s.logger.Info("periodic refresh scheduled", "interval", s.interval.String())
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("periodic refresh stopped")
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.orch.RefreshProducts(ctx, s.opts); err != nil {
		s.logger.Error("scheduled refresh failed", "error", err)
	}
}
