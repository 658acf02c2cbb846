package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"NewsRanker/internal/config"
	"NewsRanker/internal/dedup"
	"NewsRanker/internal/domain"
	"NewsRanker/internal/infrastructure/cache"
	"NewsRanker/internal/infrastructure/llm"
	"NewsRanker/internal/infrastructure/parser"
	"NewsRanker/internal/infrastructure/scheduler"
	"NewsRanker/internal/infrastructure/storage"
	"NewsRanker/internal/infrastructure/telegram"
	"NewsRanker/internal/logging"
	"NewsRanker/internal/ports"
	"NewsRanker/internal/scanner"
	"NewsRanker/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
// Heavy adapters (scraper pool, oracle, cache) are built on first use.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	store  *storage.Store

	ingestor *usecase.Ingestor
	ranker   *usecase.Ranker
	closers  []func() error
}

// Open connects to the database, ensures the schema and seeds configured sources.
func Open(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	store, err := storage.Open(ctx, cfg.Database, baseLogger.With("component", "storage"))
	if err != nil {
		return nil, err
	}

	a := &Application{cfg: cfg, logger: baseLogger, store: store}
	a.closers = append(a.closers, store.Close)

	if err := store.Migrate(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	if err := a.seedSources(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	return a, nil
}

// Store exposes the SQL store for read-only commands.
func (a *Application) Store() *storage.Store {
	return a.store
}

func (a *Application) seedSources(ctx context.Context) error {
	for _, src := range a.cfg.Sources {
		added, err := a.store.AddSource(ctx, domain.Source{Name: src.Name, URL: src.URL, Scanner: src.Scanner})
		if err != nil {
			return fmt.Errorf("seed source %s: %w", src.Name, err)
		}
		if added {
			a.logger.Info("source added from config", "name", src.Name, "url", src.URL)
		}
	}
	return nil
}

// Ingestor returns the scrape use case, building the scanner pool on first call.
func (a *Application) Ingestor() (*usecase.Ingestor, error) {
	if a.ingestor != nil {
		return a.ingestor, nil
	}

	sc := a.cfg.Scraper
	client := &http.Client{Timeout: sc.Timeout}
	sel := parser.Selectors(sc.Selectors)

	registry := scanner.NewRegistry(
		parser.NewHTMLScanner(client, sc.UserAgent, sel, a.logger.With("component", "scanner.html")),
		parser.NewRSSScanner(client, sc.UserAgent, a.logger.With("component", "scanner.rss")),
	)
	throttle := scheduler.NewThrottle(sc.RequestInterval, sc.Jitter, sc.Burst)

	source, err := parser.NewStrategySource(registry, throttle, sc.Workers, a.logger.With("component", "source"))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error { source.Release(); return nil })

	a.ingestor = usecase.NewIngestor(a.store, a.store, source, a.logger.With("component", "ingest"))
	return a.ingestor, nil
}

// Ranker returns the ranking use case, building the oracle on first call.
func (a *Application) Ranker() (*usecase.Ranker, error) {
	if a.ranker != nil {
		return a.ranker, nil
	}

	policy, err := dedup.ParsePolicy(a.cfg.Ranking.Policy)
	if err != nil {
		return nil, err
	}

	oracle, err := a.buildOracle()
	if err != nil {
		return nil, err
	}

	engine, err := dedup.NewEngine(oracle, dedup.Config{
		Policy:        policy,
		OracleTimeout: a.cfg.Oracle.Timeout,
	}, a.logger.With("component", "dedup"))
	if err != nil {
		return nil, err
	}

	deps := usecase.RankerDeps{
		Articles:   a.store,
		Aggregates: a.store,
		Runs:       a.store,
		Engine:     engine,
		DigestSize: a.cfg.Ranking.DigestSize,
	}
	tg := a.cfg.Notifications.Telegram
	if notifier := telegram.NewNotifier(tg.BotToken, tg.ChatID); notifier.Enabled() {
		deps.Notifier = notifier
	}

	ranker, err := usecase.NewRanker(deps, a.logger.With("component", "ranker"))
	if err != nil {
		return nil, err
	}
	a.ranker = ranker
	return ranker, nil
}

func (a *Application) buildOracle() (ports.SimilarityOracle, error) {
	oc := a.cfg.Oracle
	log := a.logger.With("component", "oracle", "provider", oc.Provider, "model", oc.Model)

	var (
		oracle *llm.Oracle
		err    error
	)
	switch oc.Provider {
	case config.ProviderOpenAI:
		oracle, err = llm.NewOpenAIOracle(oc, log)
	case config.ProviderAnthropic:
		oracle, err = llm.NewAnthropicOracle(oc, log)
	default:
		err = fmt.Errorf("unknown oracle provider %q", oc.Provider)
	}
	if err != nil {
		return nil, err
	}

	if oc.Cache.Dir == "" {
		return oracle, nil
	}

	verdicts, err := cache.OpenVerdictStore(oc.Cache.Dir, oc.Cache.TTL, a.logger.With("component", "cache"))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, verdicts.Close)
	namespace := cache.Namespace(oc.Provider, oc.Model, oracle.SystemPrompt())
	return cache.NewOracle(oracle, verdicts, namespace, log), nil
}

// Scheduler builds the serve-mode loop.
func (a *Application) Scheduler() (*usecase.Scheduler, error) {
	ingestor, err := a.Ingestor()
	if err != nil {
		return nil, err
	}
	ranker, err := a.Ranker()
	if err != nil {
		return nil, err
	}
	driver := scheduler.NewIntervalScheduler(a.cfg.Scheduler.Interval)
	return usecase.NewScheduler(driver, ingestor, ranker, a.logger.With("component", "scheduler")), nil
}

// Close releases everything opened so far, newest first.
func (a *Application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
