package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsRanker/internal/domain"
)

func newPostgresMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return New(db, DialectPostgres, nil), mock
}

func exact(query string) string {
	return "^" + regexp.QuoteMeta(query) + "$"
}

func TestPostgresInsertRawUsesDollarPlaceholders(t *testing.T) {
	t.Parallel()

	store, mock := newPostgresMock(t)
	published := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	article := domain.RawArticle{Title: "Storm", Link: "https://cbc.example/storm", Summary: "Rain.", Published: published, Source: "CBC"}
	query := exact("INSERT INTO news (title,link,summary,published,source) VALUES ($1,$2,$3,$4,$5) ON CONFLICT (link) DO NOTHING")

	mock.ExpectExec(query).
		WithArgs("Storm", "https://cbc.example/storm", "Rain.", published, "CBC").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := store.InsertRaw(context.Background(), article)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = store.InsertRaw(context.Background(), article)
	require.NoError(t, err)
	assert.False(t, inserted)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReplaceAggregatesLocksFirst(t *testing.T) {
	t.Parallel()

	store, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(exact("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(advisoryKey(aggregateLockName)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(exact("DELETE FROM aggregated_news")).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(exact("INSERT INTO aggregated_news (run_id,title,summary,rank) VALUES ($1,$2,$3,$4),($5,$6,$7,$8)")).
		WithArgs("run-1", "A", "s1", int64(2), "run-1", "B", "s2", int64(1)).
		WillReturnResult(sqlmock.NewResult(2, 2))
	mock.ExpectCommit()

	err := store.ReplaceAggregates(context.Background(), "run-1", []domain.AggregateArticle{
		{Title: "A", Summary: "s1", Rank: 2},
		{Title: "B", Summary: "s2", Rank: 1},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReplaceAggregatesRollsBack(t *testing.T) {
	t.Parallel()

	store, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(exact("SELECT pg_advisory_xact_lock($1)")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(exact("DELETE FROM aggregated_news")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO aggregated_news").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := store.ReplaceAggregates(context.Background(), "run-2", []domain.AggregateArticle{{Title: "A", Rank: 1}})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFinishRunUsesDollarPlaceholders(t *testing.T) {
	t.Parallel()

	store, mock := newPostgresMock(t)
	finished := time.Date(2025, 3, 1, 8, 1, 0, 0, time.UTC)

	mock.ExpectExec(exact("UPDATE rank_runs SET articles = $1, clusters = $2, error = $3, finished_at = $4, status = $5, warnings = $6 WHERE id = $7")).
		WithArgs(int64(12), int64(5), "", finished, "completed", int64(1), "run-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.FinishRun(context.Background(), domain.Run{
		ID:         "run-1",
		FinishedAt: finished,
		Status:     domain.RunCompleted,
		Articles:   12,
		Clusters:   5,
		Warnings:   1,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
