package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"NewsRanker/internal/domain"
)

// StartRun records a run in the running state.
func (s *Store) StartRun(ctx context.Context, run domain.Run) error {
	_, err := s.exec(ctx, s.db, s.sb.Insert("rank_runs").
		Columns("id", "started_at", "status").
		Values(run.ID, run.StartedAt.UTC(), string(run.Status)))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun stores the final status and counters of a run.
func (s *Store) FinishRun(ctx context.Context, run domain.Run) error {
	res, err := s.exec(ctx, s.db, s.sb.Update("rank_runs").
		SetMap(sq.Eq{
			"finished_at": run.FinishedAt.UTC(),
			"status":      string(run.Status),
			"articles":    run.Articles,
			"clusters":    run.Clusters,
			"warnings":    run.Warnings,
			"error":       run.Error,
		}).
		Where(sq.Eq{"id": run.ID}))
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("run %s not found", run.ID)
	}
	return nil
}

// LatestRun returns the most recently started run, or nil when none exist.
func (s *Store) LatestRun(ctx context.Context) (*domain.Run, error) {
	query, args, err := s.sb.
		Select("id", "started_at", "finished_at", "status", "articles", "clusters", "warnings", "error").
		From("rank_runs").
		OrderBy("started_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var (
		run      domain.Run
		status   string
		finished sql.NullTime
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&run.ID, &run.StartedAt, &finished, &status,
		&run.Articles, &run.Clusters, &run.Warnings, &run.Error)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}

	run.Status = domain.RunStatus(status)
	if finished.Valid {
		run.FinishedAt = finished.Time
	}
	return &run, nil
}
