package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"NewsRanker/internal/domain"
	"NewsRanker/internal/ports"
)

// Scheduler drives periodic scrape-then-rank cycles.
type Scheduler struct {
	driver   ports.Scheduler
	ingestor *Ingestor
	ranker   *Ranker
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring cycles.
func NewScheduler(driver ports.Scheduler, ingestor *Ingestor, ranker *Ranker, log *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, ingestor: ingestor, ranker: ranker, logger: log}
}

// Start registers the cycle with the underlying driver.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.ranker == nil {
		return nil
	}

	return s.driver.Start(ctx, func(trigger time.Time) {
		s.Cycle(ctx, trigger)
	})
}

// Cycle ingests then ranks once. Ingest failures are logged and ranking still runs
// over whatever is stored.
func (s *Scheduler) Cycle(ctx context.Context, trigger time.Time) {
	if s.ingestor != nil {
		if _, err := s.ingestor.Ingest(ctx); err != nil {
			s.warn("scheduled ingest failed", "trigger", trigger, "error", err)
		}
	}
	if ctx.Err() != nil {
		return
	}

	if _, err := s.ranker.Rank(ctx); err != nil {
		if errors.Is(err, domain.ErrRunInProgress) {
			s.warn("skipping scheduled ranking, previous run still active", "trigger", trigger)
			return
		}
		s.warn("scheduled ranking failed", "trigger", trigger, "error", err)
	}
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}

func (s *Scheduler) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
