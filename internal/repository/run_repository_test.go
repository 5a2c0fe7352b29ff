package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

func newMock(t *testing.T) (*RunRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewRunRepo(db), mock
}

var created = time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)

func TestRunRepoCreate(t *testing.T) {
	repo, mock := newMock(t)
	run := &model.ReconciliationRun{
		ID: "run-1", EventName: "Inter - Milan", VenueContext: "inter",
		GrandTotal: 9, TotalSold: 4, ReportText: "report", CreatedAt: created,
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reconciliation_runs")).
		WithArgs("run-1", "Inter - Milan", "inter", false, 9, 4, "report", "{}", created).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), run))
}

func TestRunRepoGetByID(t *testing.T) {
	repo, mock := newMock(t)
	cols := []string{"id", "event_name", "venue_context", "odd_even", "grand_total", "total_sold", "report_text", "summary_json", "created_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM reconciliation_runs WHERE id=?")).
		WithArgs("run-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("run-1", "Inter - Milan", "inter", true, 9, 4, "report", []byte(`{"event_name":"Inter - Milan"}`), created))

	run, err := repo.GetByID(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "Inter - Milan", run.EventName)
	assert.True(t, run.OddEven)
	assert.True(t, json.Valid(run.Summary))
	assert.Equal(t, created, run.CreatedAt)
}

func TestRunRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM reconciliation_runs WHERE id=?")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestRunRepoListRecent(t *testing.T) {
	repo, mock := newMock(t)
	cols := []string{"id", "event_name", "venue_context", "odd_even", "grand_total", "total_sold", "created_at"}
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT ?")).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("run-2", "Roma - Lazio", "roma", false, 3, 1, created.Add(time.Hour)).
			AddRow("run-1", "Inter - Milan", "inter", false, 9, 4, created))

	runs, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Empty(t, runs[0].ReportText)
}

func TestRunRepoListRecentError(t *testing.T) {
	repo, mock := newMock(t)
	boom := errors.New("boom")
	mock.ExpectQuery("SELECT").WithArgs(10).WillReturnError(boom)

	_, err := repo.ListRecent(context.Background(), 10)
	assert.ErrorIs(t, err, boom)
}
