package cache

import (
	"context"
	"crypto/sha256"
	"log/slog"
	"strings"

	"NewsRanker/internal/domain"
	"NewsRanker/internal/ports"
)

// Oracle answers repeated questions from the verdict store and forwards the rest.
// Only successful verdicts are stored, so failures are always retried.
type Oracle struct {
	next      ports.SimilarityOracle
	store     *VerdictStore
	namespace string
	logger    *slog.Logger
}

var _ ports.SimilarityOracle = (*Oracle)(nil)

// Namespace identifies one oracle setup. Verdicts never cross a change of provider, model or prompt.
func Namespace(provider, model, systemPrompt string) string {
	return strings.Join([]string{provider, model, systemPrompt}, "\x00")
}

// NewOracle wraps next. namespace separates verdicts of different oracle setups, see Namespace.
func NewOracle(next ports.SimilarityOracle, store *VerdictStore, namespace string, log *slog.Logger) *Oracle {
	return &Oracle{next: next, store: store, namespace: namespace, logger: log}
}

// Match returns a stored verdict for the same question or asks the wrapped oracle.
func (o *Oracle) Match(ctx context.Context, candidate domain.Representative, clusters []domain.Representative) (domain.Verdict, error) {
	if len(clusters) == 0 {
		return o.next.Match(ctx, candidate, clusters)
	}

	key := o.key(candidate, clusters)
	if verdict, ok, err := o.store.Get(key); err != nil {
		o.warn("verdict cache read failed", "error", err)
	} else if ok && (!verdict.Matched || verdict.Index < len(clusters)) {
		o.debug("verdict cache hit", "title", candidate.Title)
		return verdict, nil
	}

	verdict, err := o.next.Match(ctx, candidate, clusters)
	if err != nil {
		return verdict, err
	}

	if err := o.store.Put(key, verdict); err != nil {
		o.warn("verdict cache write failed", "error", err)
	}
	return verdict, nil
}

// key hashes the whole question. Fields are NUL separated so boundaries cannot shift.
func (o *Oracle) key(candidate domain.Representative, clusters []domain.Representative) []byte {
	h := sha256.New()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}

	write(o.namespace)
	write(candidate.Title)
	write(candidate.Summary)
	for _, rep := range clusters {
		write(rep.Title)
		write(rep.Summary)
	}

	return append([]byte("verdict:"), h.Sum(nil)...)
}

func (o *Oracle) debug(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Debug(msg, args...)
	}
}

func (o *Oracle) warn(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Warn(msg, args...)
	}
}
