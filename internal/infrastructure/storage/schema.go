package storage

import (
	"context"
	"fmt"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS news (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    link TEXT NOT NULL UNIQUE,
    summary TEXT NOT NULL DEFAULT '',
    published TIMESTAMPTZ NOT NULL,
    source TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_news_published ON news(published);

CREATE TABLE IF NOT EXISTS sources (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    url TEXT NOT NULL UNIQUE,
    scanner TEXT NOT NULL DEFAULT 'html'
);

CREATE TABLE IF NOT EXISTS aggregated_news (
    id SERIAL PRIMARY KEY,
    run_id TEXT NOT NULL,
    title TEXT NOT NULL,
    summary TEXT NOT NULL DEFAULT '',
    rank INTEGER NOT NULL CHECK (rank >= 1)
);

CREATE TABLE IF NOT EXISTS rank_runs (
    id TEXT PRIMARY KEY,
    started_at TIMESTAMPTZ NOT NULL,
    finished_at TIMESTAMPTZ,
    status TEXT NOT NULL,
    articles INTEGER NOT NULL DEFAULT 0,
    clusters INTEGER NOT NULL DEFAULT 0,
    warnings INTEGER NOT NULL DEFAULT 0,
    error TEXT NOT NULL DEFAULT ''
);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS news (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    link TEXT NOT NULL UNIQUE,
    summary TEXT NOT NULL DEFAULT '',
    published TIMESTAMP NOT NULL,
    source TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_news_published ON news(published);

CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    url TEXT NOT NULL UNIQUE,
    scanner TEXT NOT NULL DEFAULT 'html'
);

CREATE TABLE IF NOT EXISTS aggregated_news (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    title TEXT NOT NULL,
    summary TEXT NOT NULL DEFAULT '',
    rank INTEGER NOT NULL CHECK (rank >= 1)
);

CREATE TABLE IF NOT EXISTS rank_runs (
    id TEXT PRIMARY KEY,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP,
    status TEXT NOT NULL,
    articles INTEGER NOT NULL DEFAULT 0,
    clusters INTEGER NOT NULL DEFAULT 0,
    warnings INTEGER NOT NULL DEFAULT 0,
    error TEXT NOT NULL DEFAULT ''
);
`

// Migrate creates all tables and indexes if they don't exist.
func (s *Store) Migrate(ctx context.Context) error {
	schema := postgresSchema
	if s.dialect == DialectSQLite {
		schema = sqliteSchema
	}

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	s.debug("schema initialized", "dialect", s.dialect)
	return nil
}
