package storage

import (
	"context"
	"fmt"

	"NewsRanker/internal/domain"
)

// InsertRaw stores a scraped article; it returns false when the link is already known.
func (s *Store) InsertRaw(ctx context.Context, article domain.RawArticle) (bool, error) {
	insert := s.sb.Insert("news").
		Columns("title", "link", "summary", "published", "source").
		Values(article.Title, article.Link, article.Summary, article.Published.UTC(), article.Source).
		Suffix("ON CONFLICT (link) DO NOTHING")

	res, err := s.exec(ctx, s.db, insert)
	if err != nil {
		return false, fmt.Errorf("insert news: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		s.debug("duplicate news article skipped", "link", article.Link)
		return false, nil
	}

	return true, nil
}

// ListRaw returns every raw article, oldest first, ties broken by insertion order.
func (s *Store) ListRaw(ctx context.Context) ([]domain.RawArticle, error) {
	rows, err := s.query(ctx, s.sb.
		Select("title", "link", "summary", "published", "source").
		From("news").
		OrderBy("published ASC", "id ASC"))
	if err != nil {
		return nil, fmt.Errorf("query news: %w", err)
	}

	var result []domain.RawArticle
	for rows.Next() {
		var a domain.RawArticle
		if err := rows.Scan(&a.Title, &a.Link, &a.Summary, &a.Published, &a.Source); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan news: %w", err)
		}
		result = append(result, a)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}
