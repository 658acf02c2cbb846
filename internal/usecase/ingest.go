package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"NewsRanker/internal/domain"
	"NewsRanker/internal/ports"
)

// IngestReport summarizes one scrape pass.
type IngestReport struct {
	Sources    int
	Fetched    int
	Inserted   int
	Duplicates int
	// SourceErrors joins the per-source failures; the other sources were still stored.
	SourceErrors error
}

// Ingestor scrapes every known source into the article store.
type Ingestor struct {
	sources  ports.SourceStore
	articles ports.ArticleStore
	fetcher  ports.ArticleSource
	logger   *slog.Logger
}

// NewIngestor wires the source list, the raw article store and the fetcher.
func NewIngestor(sources ports.SourceStore, articles ports.ArticleStore, fetcher ports.ArticleSource, log *slog.Logger) *Ingestor {
	return &Ingestor{sources: sources, articles: articles, fetcher: fetcher, logger: log}
}

// Ingest fetches all sources and inserts what they return. Articles whose link is already
// stored are counted as duplicates and skipped.
func (i *Ingestor) Ingest(ctx context.Context) (*IngestReport, error) {
	if i.sources == nil || i.articles == nil || i.fetcher == nil {
		return nil, fmt.Errorf("ingestor is not configured")
	}

	sources, err := i.sources.ListSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list sources: %w", domain.ErrPersistenceFailure, err)
	}

	report := &IngestReport{Sources: len(sources)}
	if len(sources) == 0 {
		i.warn("no sources configured")
		return report, nil
	}

	fetched, fetchErr := i.fetcher.Fetch(ctx, sources)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fetchErr != nil {
		report.SourceErrors = fetchErr
		i.warn("some sources failed", "error", fetchErr)
	}
	report.Fetched = len(fetched)

	for _, article := range fetched {
		inserted, err := i.articles.InsertRaw(ctx, article)
		if err != nil {
			return report, fmt.Errorf("%w: insert %s: %w", domain.ErrPersistenceFailure, article.Link, err)
		}
		if !inserted {
			report.Duplicates++
			i.warn("duplicate article", "link", article.Link, "source", article.Source)
			continue
		}
		report.Inserted++
		i.debug("inserted article", "title", article.Title, "source", article.Source)
	}

	i.info("ingest done",
		"sources", report.Sources,
		"fetched", report.Fetched,
		"inserted", report.Inserted,
		"duplicates", report.Duplicates)
	return report, nil
}

func (i *Ingestor) debug(msg string, args ...interface{}) {
	if i.logger != nil {
		i.logger.Debug(msg, args...)
	}
}

func (i *Ingestor) info(msg string, args ...interface{}) {
	if i.logger != nil {
		i.logger.Info(msg, args...)
	}
}

func (i *Ingestor) warn(msg string, args ...interface{}) {
	if i.logger != nil {
		i.logger.Warn(msg, args...)
	}
}
