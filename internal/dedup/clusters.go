package dedup

import "NewsRanker/internal/domain"

// clusterSet is the ordered set of stories built during one run.
// reps and ranks are parallel; entries are only appended or incremented.
type clusterSet struct {
	reps  []domain.Representative
	ranks []int
}

func (s *clusterSet) len() int {
	return len(s.reps)
}

// view exposes the representatives without letting the oracle append into the backing array.
func (s *clusterSet) view() []domain.Representative {
	return s.reps[:len(s.reps):len(s.reps)]
}

func (s *clusterSet) add(rep domain.Representative) {
	s.reps = append(s.reps, rep)
	s.ranks = append(s.ranks, 1)
}

func (s *clusterSet) increment(i int) {
	s.ranks[i]++
}

func (s *clusterSet) aggregates() []domain.AggregateArticle {
	out := make([]domain.AggregateArticle, len(s.reps))
	for i, rep := range s.reps {
		out[i] = domain.AggregateArticle{
			Title:   rep.Title,
			Summary: rep.Summary,
			Rank:    s.ranks[i],
		}
	}
	return out
}
