package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"NewsRanker/internal/dedup"
	"NewsRanker/internal/domain"
	"NewsRanker/internal/ports"
)

// RankerDeps wires the stores, the engine and the optional digest channel.
type RankerDeps struct {
	Articles   ports.ArticleStore
	Aggregates ports.AggregateStore
	Runs       ports.RunStore
	Engine     *dedup.Engine
	Notifier   ports.Notifier
	DigestSize int
}

// RankReport describes a finished run.
type RankReport struct {
	Run    domain.Run
	Result *dedup.Result
}

// Ranker runs the engine over the whole article table and swaps in the new aggregates.
// Only one run may be active per process.
type Ranker struct {
	articles   ports.ArticleStore
	aggregates ports.AggregateStore
	runs       ports.RunStore
	engine     *dedup.Engine
	notifier   ports.Notifier
	digestSize int
	logger     *slog.Logger

	running sync.Mutex
	now     func() time.Time
	newID   func() string
}

// NewRanker builds a Ranker. Runs and Notifier are optional; a missing article
// store, aggregate store or engine is an error.
func NewRanker(deps RankerDeps, log *slog.Logger) (*Ranker, error) {
	if deps.Articles == nil || deps.Aggregates == nil {
		return nil, fmt.Errorf("ranker requires article and aggregate stores")
	}
	if deps.Engine == nil {
		return nil, fmt.Errorf("ranker requires an engine")
	}
	return &Ranker{
		articles:   deps.Articles,
		aggregates: deps.Aggregates,
		runs:       deps.Runs,
		engine:     deps.Engine,
		notifier:   deps.Notifier,
		digestSize: deps.DigestSize,
		logger:     log,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}, nil
}

// Rank performs one full run. On any failure the previous aggregates stay untouched
// and the run record is marked failed.
func (r *Ranker) Rank(ctx context.Context) (*RankReport, error) {
	if !r.running.TryLock() {
		return nil, domain.ErrRunInProgress
	}
	defer r.running.Unlock()

	run := domain.Run{ID: r.newID(), StartedAt: r.now(), Status: domain.RunRunning}
	if r.runs != nil {
		if err := r.runs.StartRun(ctx, run); err != nil {
			return nil, fmt.Errorf("%w: start run: %w", domain.ErrPersistenceFailure, err)
		}
	}
	r.info("ranking run started", "run", run.ID, "policy", r.engine.Policy())

	result, err := r.execute(ctx, run.ID)
	if result != nil {
		run.Articles = result.Processed
		run.Clusters = len(result.Aggregates)
		run.Warnings = len(result.Warnings)
	}
	run.FinishedAt = r.now()

	if err != nil {
		run.Status = domain.RunFailed
		run.Error = err.Error()
		r.finish(ctx, run)
		r.warn("ranking run failed", "run", run.ID, "error", err)
		return &RankReport{Run: run, Result: result}, err
	}

	run.Status = domain.RunCompleted
	r.finish(ctx, run)
	r.info("ranking run completed",
		"run", run.ID,
		"articles", run.Articles,
		"clusters", run.Clusters,
		"warnings", run.Warnings,
		"duration", run.FinishedAt.Sub(run.StartedAt))

	r.publishDigest(ctx, result.Aggregates)
	return &RankReport{Run: run, Result: result}, nil
}

func (r *Ranker) execute(ctx context.Context, runID string) (*dedup.Result, error) {
	articles, err := r.articles.ListRaw(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list articles: %w", domain.ErrPersistenceFailure, err)
	}

	result, err := r.engine.Rank(ctx, articles)
	if err != nil {
		return nil, fmt.Errorf("rank %d articles: %w", len(articles), err)
	}

	if err := r.aggregates.ReplaceAggregates(ctx, runID, result.Aggregates); err != nil {
		return result, fmt.Errorf("%w: replace aggregates: %w", domain.ErrPersistenceFailure, err)
	}
	return result, nil
}

// finish records the outcome even when ctx was cancelled mid-run.
func (r *Ranker) finish(ctx context.Context, run domain.Run) {
	if r.runs == nil {
		return
	}
	if err := r.runs.FinishRun(context.WithoutCancel(ctx), run); err != nil {
		r.warn("record run outcome", "run", run.ID, "error", err)
	}
}

func (r *Ranker) publishDigest(ctx context.Context, aggregates []domain.AggregateArticle) {
	if r.notifier == nil || r.digestSize <= 0 || len(aggregates) == 0 {
		return
	}
	message := buildDigestMessage(topStories(aggregates, r.digestSize))
	if err := r.notifier.PublishDigest(ctx, message); err != nil {
		r.warn("publish digest", "error", err)
	}
}

func (r *Ranker) info(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}

func (r *Ranker) warn(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}
