package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

// RunRepo stores reconciliation runs in the reconciliation_runs table.
type RunRepo struct{ DB *sql.DB }

func NewRunRepo(db *sql.DB) *RunRepo { return &RunRepo{DB: db} }

const runColumns = "id, event_name, venue_context, odd_even, grand_total, total_sold, report_text, summary_json, created_at"

// Create inserts a run.
func (r *RunRepo) Create(ctx context.Context, run *model.ReconciliationRun) error {
	summary := run.Summary
	if len(summary) == 0 {
		summary = []byte("{}")
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO reconciliation_runs ("+runColumns+") VALUES (?,?,?,?,?,?,?,?,?)",
		run.ID, run.EventName, run.VenueContext, run.OddEven, run.GrandTotal, run.TotalSold,
		run.ReportText, string(summary), run.CreatedAt)
	return err
}

// GetByID loads one run with its report.
func (r *RunRepo) GetByID(ctx context.Context, id string) (*model.ReconciliationRun, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+runColumns+" FROM reconciliation_runs WHERE id=? LIMIT 1", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	return run, err
}

// ListRecent returns the newest runs first, without report text or
// summary.
func (r *RunRepo) ListRecent(ctx context.Context, limit int) ([]model.ReconciliationRun, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, event_name, venue_context, odd_even, grand_total, total_sold, created_at "+
			"FROM reconciliation_runs ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ReconciliationRun
	for rows.Next() {
		var run model.ReconciliationRun
		if err := rows.Scan(&run.ID, &run.EventName, &run.VenueContext, &run.OddEven,
			&run.GrandTotal, &run.TotalSold, &run.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func scanRun(row *sql.Row) (*model.ReconciliationRun, error) {
	var (
		run     model.ReconciliationRun
		summary []byte
	)
	if err := row.Scan(&run.ID, &run.EventName, &run.VenueContext, &run.OddEven, &run.GrandTotal,
		&run.TotalSold, &run.ReportText, &summary, &run.CreatedAt); err != nil {
		return nil, err
	}
	run.Summary = summary
	return &run, nil
}
