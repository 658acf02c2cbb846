package ports

import (
	"context"
	"time"

	"NewsRanker/internal/domain"
)

// ArticleStore is the durable table of raw articles keyed by link.
type ArticleStore interface {
	// InsertRaw returns false when an article with the same link already exists.
	InsertRaw(ctx context.Context, article domain.RawArticle) (bool, error)
	ListRaw(ctx context.Context) ([]domain.RawArticle, error)
}

// SourceStore keeps the static list of sites to scrape.
type SourceStore interface {
	AddSource(ctx context.Context, source domain.Source) (bool, error)
	ListSources(ctx context.Context) ([]domain.Source, error)
}

// AggregateStore persists the clusters produced by a complete run.
type AggregateStore interface {
	// ReplaceAggregates swaps the whole aggregate set for the output of runID.
	ReplaceAggregates(ctx context.Context, runID string, aggregates []domain.AggregateArticle) error
	ListAggregates(ctx context.Context, limit int) ([]domain.AggregateArticle, error)
}

// RunStore records ranking runs for audit.
type RunStore interface {
	StartRun(ctx context.Context, run domain.Run) error
	FinishRun(ctx context.Context, run domain.Run) error
}

// SimilarityOracle judges whether a candidate matches one of the existing clusters.
// The clusters slice is owned by the caller and must not be modified or retained.
type SimilarityOracle interface {
	Match(ctx context.Context, candidate domain.Representative, clusters []domain.Representative) (domain.Verdict, error)
}

// ArticleSource pulls fresh articles from the configured sites.
// A non-nil error may accompany a partial result when only some sources failed.
type ArticleSource interface {
	Fetch(ctx context.Context, sources []domain.Source) ([]domain.RawArticle, error)
}

// Notifier streams ranking digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
