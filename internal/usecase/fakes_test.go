package usecase

import (
	"context"
	"errors"
	"sync"

	"NewsRanker/internal/domain"
)

type memStore struct {
	mu         sync.Mutex
	articles   []domain.RawArticle
	sources    []domain.Source
	aggregates []domain.AggregateArticle
	aggRun     string
	runs       map[string]domain.Run
	replaceErr error
	listErr    error
}

func newMemStore(articles ...domain.RawArticle) *memStore {
	return &memStore{articles: articles, runs: map[string]domain.Run{}}
}

func (m *memStore) InsertRaw(_ context.Context, article domain.RawArticle) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.articles {
		if existing.Link == article.Link {
			return false, nil
		}
	}
	m.articles = append(m.articles, article)
	return true, nil
}

func (m *memStore) ListRaw(context.Context) ([]domain.RawArticle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.RawArticle(nil), m.articles...), nil
}

func (m *memStore) AddSource(_ context.Context, source domain.Source) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = append(m.sources, source)
	return true, nil
}

func (m *memStore) ListSources(context.Context) ([]domain.Source, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Source(nil), m.sources...), nil
}

func (m *memStore) ReplaceAggregates(_ context.Context, runID string, aggregates []domain.AggregateArticle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.aggregates = append([]domain.AggregateArticle(nil), aggregates...)
	m.aggRun = runID
	return nil
}

func (m *memStore) ListAggregates(context.Context, int) ([]domain.AggregateArticle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.AggregateArticle(nil), m.aggregates...), nil
}

func (m *memStore) StartRun(_ context.Context, run domain.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = run
	return nil
}

func (m *memStore) FinishRun(_ context.Context, run domain.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.runs[run.ID]; !ok {
		return errors.New("unknown run")
	}
	m.runs[run.ID] = run
	return nil
}

func (m *memStore) run(id string) domain.Run {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs[id]
}

// oracleFunc adapts a function to ports.SimilarityOracle.
type oracleFunc func(ctx context.Context, candidate domain.Representative, clusters []domain.Representative) (domain.Verdict, error)

func (f oracleFunc) Match(ctx context.Context, candidate domain.Representative, clusters []domain.Representative) (domain.Verdict, error) {
	return f(ctx, candidate, clusters)
}

// byTitle matches a candidate to the cluster named in table, or starts a new story.
func byTitle(table map[string]string) oracleFunc {
	return func(_ context.Context, candidate domain.Representative, clusters []domain.Representative) (domain.Verdict, error) {
		target, ok := table[candidate.Title]
		if !ok {
			return domain.NoMatch(), nil
		}
		for i, rep := range clusters {
			if rep.Title == target {
				return domain.MatchAt(i), nil
			}
		}
		return domain.NoMatch(), nil
	}
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (n *recordingNotifier) PublishDigest(_ context.Context, digest string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, digest)
	return n.err
}

type stubFetcher struct {
	articles []domain.RawArticle
	err      error
	calls    int
}

func (s *stubFetcher) Fetch(_ context.Context, sources []domain.Source) ([]domain.RawArticle, error) {
	s.calls++
	return s.articles, s.err
}
