package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"NewsRanker/internal/config"
	"NewsRanker/internal/ports"
)

// Dialect is the SQL flavour behind the store.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// Store persists raw articles, sources, aggregates and run records in one SQL database.
type Store struct {
	db      *sql.DB
	dialect Dialect
	sb      sq.StatementBuilderType
	logger  *slog.Logger
}

var (
	_ ports.ArticleStore   = (*Store)(nil)
	_ ports.SourceStore    = (*Store)(nil)
	_ ports.AggregateStore = (*Store)(nil)
	_ ports.RunStore       = (*Store)(nil)
)

// Open connects using the configured driver and pings the database.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	dialect := Dialect(cfg.Driver)
	if dialect != DialectPostgres && dialect != DialectSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if dialect == DialectSQLite {
		// SQLite serializes writers; a single connection avoids SQLITE_BUSY between our own statements.
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return New(db, dialect, log), nil
}

// New wraps an existing handle.
func New(db *sql.DB, dialect Dialect, log *slog.Logger) *Store {
	var placeholders sq.PlaceholderFormat = sq.Question
	if dialect == DialectPostgres {
		placeholders = sq.Dollar
	}
	return &Store{
		db:      db,
		dialect: dialect,
		sb:      sq.StatementBuilder.PlaceholderFormat(placeholders),
		logger:  log,
	}
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) exec(ctx context.Context, runner execer, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return runner.ExecContext(ctx, query, args...)
}

func (s *Store) query(ctx context.Context, b sq.Sqlizer) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return s.db.QueryContext(ctx, query, args...)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
