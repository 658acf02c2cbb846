package storage

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"

	"NewsRanker/internal/domain"
)

const aggregateLockName = "newsranker.aggregated_news"

// ReplaceAggregates swaps the aggregate set for one run's output in a single transaction.
// Any failure rolls back, leaving the previous run's aggregates in place.
func (s *Store) ReplaceAggregates(ctx context.Context, runID string, aggregates []domain.AggregateArticle) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if s.dialect == DialectPostgres {
		if _, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", advisoryKey(aggregateLockName)); err != nil {
			return fmt.Errorf("lock aggregates: %w", err)
		}
	}

	if _, err = s.exec(ctx, tx, s.sb.Delete("aggregated_news")); err != nil {
		return fmt.Errorf("clear aggregates: %w", err)
	}

	if err = s.insertAggregates(ctx, tx, runID, aggregates); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit aggregates: %w", err)
	}

	s.debug("aggregates replaced", "run_id", runID, "count", len(aggregates))
	return nil
}

const aggregateBatch = 200

func (s *Store) insertAggregates(ctx context.Context, tx *sql.Tx, runID string, aggregates []domain.AggregateArticle) error {
	for start := 0; start < len(aggregates); start += aggregateBatch {
		end := min(start+aggregateBatch, len(aggregates))

		insert := s.sb.Insert("aggregated_news").Columns("run_id", "title", "summary", "rank")
		for _, agg := range aggregates[start:end] {
			insert = insert.Values(runID, agg.Title, agg.Summary, agg.Rank)
		}
		if _, err := s.exec(ctx, tx, insert); err != nil {
			return fmt.Errorf("insert aggregates: %w", err)
		}
	}
	return nil
}

// ListAggregates returns the current aggregates by descending rank, then first-seen order.
// A non-positive limit returns everything.
func (s *Store) ListAggregates(ctx context.Context, limit int) ([]domain.AggregateArticle, error) {
	q := s.sb.Select("title", "summary", "rank").From("aggregated_news").OrderBy("rank DESC", "id ASC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	rows, err := s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query aggregates: %w", err)
	}
	defer rows.Close()

	var result []domain.AggregateArticle
	for rows.Next() {
		var agg domain.AggregateArticle
		if err := rows.Scan(&agg.Title, &agg.Summary, &agg.Rank); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		result = append(result, agg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return result, nil
}

func advisoryKey(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64())
}
