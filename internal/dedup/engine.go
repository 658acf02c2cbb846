// Package dedup folds raw articles into ranked clusters of equivalent stories.
package dedup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"NewsRanker/internal/domain"
	"NewsRanker/internal/ports"
)

// Result is the outcome of one complete ranking pass.
type Result struct {
	// Aggregates are the clusters in first-seen order.
	Aggregates  []domain.AggregateArticle
	Warnings    []Warning
	OracleCalls int
	Processed   int
}

// Engine runs the single-pass incremental clustering.
type Engine struct {
	oracle ports.SimilarityOracle
	cfg    Config
	logger *slog.Logger
}

// NewEngine wires the oracle; it never holds store handles.
func NewEngine(oracle ports.SimilarityOracle, cfg Config, logger *slog.Logger) (*Engine, error) {
	if oracle == nil {
		return nil, fmt.Errorf("similarity oracle cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{oracle: oracle, cfg: cfg, logger: logger}, nil
}

// Policy reports the configured failure policy.
func (e *Engine) Policy() Policy {
	return e.cfg.Policy
}

// Rank classifies every article in input order. Article i+1 is always judged against the
// clusters as they stood after article i, so the loop must stay sequential.
func (e *Engine) Rank(ctx context.Context, articles []domain.RawArticle) (*Result, error) {
	result := &Result{Aggregates: []domain.AggregateArticle{}}
	if len(articles) == 0 {
		return result, nil
	}

	var set clusterSet
	for i, article := range articles {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("ranking aborted after %d of %d articles: %w", i, len(articles), err)
		}

		candidate := article.Representative()
		if set.len() == 0 {
			set.add(candidate)
			result.Processed++
			continue
		}

		verdict, err := e.judge(ctx, candidate, set.view())
		result.OracleCalls++
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("ranking aborted at article %d: %w", i, ctx.Err())
			}

			oerr := &OracleError{Position: i, Link: article.Link, Err: err}
			if e.cfg.Policy == PolicyFailFast {
				return nil, oerr
			}

			e.warn("oracle failed, keeping article as its own story",
				"position", i, "link", article.Link, "error", err)
			result.Warnings = append(result.Warnings, Warning{Position: i, Link: article.Link, Err: err})
			verdict = domain.NoMatch()
		}

		if verdict.Matched {
			set.increment(verdict.Index)
		} else {
			set.add(candidate)
		}
		result.Processed++
	}

	result.Aggregates = set.aggregates()
	e.debug("ranking done",
		"articles", len(articles),
		"clusters", len(result.Aggregates),
		"oracle_calls", result.OracleCalls,
		"warnings", len(result.Warnings))
	return result, nil
}

// judge asks the oracle under the per-call deadline and normalizes its failures into
// domain.ErrOracleTimeout or domain.ErrOracleUnavailable.
func (e *Engine) judge(ctx context.Context, candidate domain.Representative, clusters []domain.Representative) (domain.Verdict, error) {
	callCtx := ctx
	if e.cfg.OracleTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.cfg.OracleTimeout)
		defer cancel()
	}

	verdict, err := e.oracle.Match(callCtx, candidate, clusters)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return domain.Verdict{}, ctx.Err()
		case errors.Is(callCtx.Err(), context.DeadlineExceeded), errors.Is(err, domain.ErrOracleTimeout):
			return domain.Verdict{}, fmt.Errorf("%w: %v", domain.ErrOracleTimeout, err)
		case errors.Is(err, domain.ErrOracleUnavailable):
			return domain.Verdict{}, err
		default:
			return domain.Verdict{}, fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
		}
	}

	if verdict.Matched && (verdict.Index < 0 || verdict.Index >= len(clusters)) {
		return domain.Verdict{}, fmt.Errorf("%w: cluster index %d out of range [0,%d)",
			domain.ErrAmbiguousResponse, verdict.Index, len(clusters))
	}

	return verdict, nil
}

func (e *Engine) debug(msg string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func (e *Engine) warn(msg string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}
