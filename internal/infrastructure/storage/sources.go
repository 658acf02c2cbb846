package storage

import (
	"context"
	"fmt"

	"NewsRanker/internal/domain"
)

const defaultScanner = "html"

// AddSource registers a site; it returns false when the URL is already registered.
func (s *Store) AddSource(ctx context.Context, source domain.Source) (bool, error) {
	scanner := source.Scanner
	if scanner == "" {
		scanner = defaultScanner
	}

	res, err := s.exec(ctx, s.db, s.sb.Insert("sources").
		Columns("name", "url", "scanner").
		Values(source.Name, source.URL, scanner).
		Suffix("ON CONFLICT (url) DO NOTHING"))
	if err != nil {
		return false, fmt.Errorf("insert source: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// ListSources returns all sources in registration order.
func (s *Store) ListSources(ctx context.Context) ([]domain.Source, error) {
	rows, err := s.query(ctx, s.sb.Select("name", "url", "scanner").From("sources").OrderBy("id ASC"))
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rows.Close()

	var result []domain.Source
	for rows.Next() {
		var src domain.Source
		if err := rows.Scan(&src.Name, &src.URL, &src.Scanner); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		result = append(result, src)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return result, nil
}
