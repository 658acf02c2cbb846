package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"

	"NewsRanker/internal/domain"
	"NewsRanker/internal/ports"
)

// completer sends one system+user exchange to a chat model and returns its text reply.
type completer interface {
	complete(ctx context.Context, system, user string) (string, error)
}

// Oracle implements ports.SimilarityOracle on top of a chat model.
type Oracle struct {
	name         string
	model        completer
	systemPrompt string
	sem          *semaphore.Weighted
	logger       *slog.Logger
}

var _ ports.SimilarityOracle = (*Oracle)(nil)

func newOracle(name string, model completer, prompt string, maxConcurrent int, log *slog.Logger) *Oracle {
	var sem *semaphore.Weighted
	if maxConcurrent > 0 {
		sem = semaphore.NewWeighted(int64(maxConcurrent))
	}
	return &Oracle{
		name:         name,
		model:        model,
		systemPrompt: systemPrompt(prompt),
		sem:          sem,
		logger:       log,
	}
}

// Match asks the model which story, if any, the candidate belongs to.
// Transport failures wrap domain.ErrOracleUnavailable; unusable replies wrap domain.ErrAmbiguousResponse.
func (o *Oracle) Match(ctx context.Context, candidate domain.Representative, clusters []domain.Representative) (domain.Verdict, error) {
	if len(clusters) == 0 {
		return domain.NoMatch(), nil
	}

	if o.sem != nil {
		if err := o.sem.Acquire(ctx, 1); err != nil {
			return domain.Verdict{}, fmt.Errorf("%w: wait for slot: %v", domain.ErrOracleUnavailable, err)
		}
		defer o.sem.Release(1)
	}

	start := time.Now()
	reply, err := o.model.complete(ctx, o.systemPrompt, buildMatchPrompt(candidate, clusters))
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("%w: %s: %v", domain.ErrOracleUnavailable, o.name, err)
	}

	verdict, err := parseVerdict(reply, len(clusters))
	if err != nil {
		o.debug("unparseable oracle reply", "reply", clip(reply, 200), "error", err)
		return domain.Verdict{}, err
	}

	o.debug("oracle verdict",
		"title", candidate.Title,
		"stories", len(clusters),
		"matched", verdict.Matched,
		"index", verdict.Index,
		"duration", time.Since(start))
	return verdict, nil
}

// SystemPrompt returns the effective instructions sent with every request.
func (o *Oracle) SystemPrompt() string {
	return o.systemPrompt
}

func (o *Oracle) debug(msg string, args ...interface{}) {
	if o.logger != nil {
		o.logger.Debug(msg, args...)
	}
}
