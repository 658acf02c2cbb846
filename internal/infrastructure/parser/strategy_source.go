package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"NewsRanker/internal/domain"
	"NewsRanker/internal/ports"
	"NewsRanker/internal/scanner"
)

// Throttle gates each outbound source request.
type Throttle interface {
	Wait(ctx context.Context) error
}

// StrategySource implements ArticleSource via registered scanner strategies.
// Requests are released by the throttle and executed on a bounded worker pool.
type StrategySource struct {
	registry *scanner.Registry
	throttle Throttle
	pool     *ants.Pool
	logger   *slog.Logger
	now      func() time.Time
}

var _ ports.ArticleSource = (*StrategySource)(nil)

// NewStrategySource wires the scanner registry with a pool of workers goroutines.
func NewStrategySource(reg *scanner.Registry, throttle Throttle, workers int, log *slog.Logger) (*StrategySource, error) {
	if reg == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}
	if workers <= 0 {
		workers = 1
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create scrape pool: %w", err)
	}

	return &StrategySource{
		registry: reg,
		throttle: throttle,
		pool:     pool,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Release stops the worker pool.
func (s *StrategySource) Release() {
	s.pool.Release()
}

// Fetch scans every source and returns articles in source order.
// A failing source does not stop the others; failures come back joined next to the partial result.
func (s *StrategySource) Fetch(ctx context.Context, sources []domain.Source) ([]domain.RawArticle, error) {
	s.debug("fetch sources", "sources", len(sources))

	var (
		wg       sync.WaitGroup
		results  = make([][]domain.RawArticle, len(sources))
		failures = make([]error, len(sources))
	)

	for i, src := range sources {
		strategy, err := s.registry.Resolve(src.Scanner)
		if err != nil {
			failures[i] = fmt.Errorf("source %s: %w", src.Name, err)
			continue
		}

		if s.throttle != nil {
			if err := s.throttle.Wait(ctx); err != nil {
				wg.Wait()
				return nil, err
			}
		}

		req := scanner.Request{Source: src, FetchedAt: s.now()}
		wg.Add(1)
		err = s.pool.Submit(func() {
			defer wg.Done()
			s.debug("scan source", "source", src.Name, "scanner", strategy.Name())

			articles, err := strategy.Scan(ctx, req)
			if err != nil {
				failures[i] = fmt.Errorf("scan source %s: %w", src.Name, err)
				s.warn("source failed", "source", src.Name, "error", err)
				return
			}
			for j := range articles {
				if articles[j].Source == "" {
					articles[j].Source = src.Name
				}
			}
			results[i] = articles
			s.debug("source produced articles", "source", src.Name, "count", len(articles))
		})
		if err != nil {
			wg.Done()
			failures[i] = fmt.Errorf("source %s: submit: %w", src.Name, err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var aggregated []domain.RawArticle
	for _, articles := range results {
		aggregated = append(aggregated, articles...)
	}

	s.debug("strategy source done", "total_articles", len(aggregated))
	return aggregated, errors.Join(failures...)
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *StrategySource) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
