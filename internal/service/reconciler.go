package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/ticket-stock-reconciler/internal/allocation"
	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
	"github.com/iliyamo/ticket-stock-reconciler/internal/queue"
	"github.com/iliyamo/ticket-stock-reconciler/internal/reconcile"
)

// ErrInvalidPath is returned for event paths that are empty, escape the
// stock root or do not name a directory.
var ErrInvalidPath = errors.New("invalid event path")

// RunStore persists reconciliation runs.
type RunStore interface {
	Create(ctx context.Context, run *model.ReconciliationRun) error
	GetByID(ctx context.Context, id string) (*model.ReconciliationRun, error)
	ListRecent(ctx context.Context, limit int) ([]model.ReconciliationRun, error)
}

// ResolveEventPath joins rel onto root and checks that the result stays
// below root and is a directory.
func ResolveEventPath(root, rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	full := filepath.Join(root, filepath.Clean("/"+rel))
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, rel)
	}
	info, err := os.Stat(full)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a folder", ErrInvalidPath, rel)
	}
	return full, nil
}

// ReconcileRequest is one reconciliation order.
type ReconcileRequest struct {
	Path     string // relative to the stock root
	OddEven  bool
	Demand   []allocation.DemandRow
	Operator string
}

// Reconciler runs, stores and announces reconciliations.
type Reconciler struct {
	Root    string
	Builder *reconcile.Builder
	Runs    RunStore
	Events  EventPublisher // nil disables publishing
	Logger  *slog.Logger
	Now     func() time.Time
}

// Reconcile builds the report for req and stores it.  Publishing failures
// are logged and do not fail the run.
func (s *Reconciler) Reconcile(ctx context.Context, req ReconcileRequest) (*model.ReconciliationRun, *model.ReconciliationReport, error) {
	path, err := ResolveEventPath(s.Root, req.Path)
	if err != nil {
		return nil, nil, err
	}
	rep, err := s.Builder.Build(path, reconcile.Options{OddEven: req.OddEven, Demand: req.Demand})
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	summary, err := json.Marshal(rep)
	if err != nil {
		return nil, nil, fmt.Errorf("encode report: %w", err)
	}
	run := &model.ReconciliationRun{
		ID:           uuid.NewString(),
		EventName:    rep.EventName,
		VenueContext: rep.VenueContext,
		OddEven:      req.OddEven,
		TotalSold:    rep.TotalSold(),
		ReportText:   reconcile.Render(rep),
		Summary:      summary,
		CreatedAt:    s.now().UTC(),
	}
	if rep.Inventory != nil {
		run.GrandTotal = rep.Inventory.GrandTotal
	}
	if err := s.Runs.Create(ctx, run); err != nil {
		return nil, nil, fmt.Errorf("store run: %w", err)
	}

	s.publish(ctx, run, rep, req.Operator)
	s.Logger.Info("reconciliation stored", "run_id", run.ID, "event", run.EventName, "operator", req.Operator)
	return run, rep, nil
}

func (s *Reconciler) publish(ctx context.Context, run *model.ReconciliationRun, rep *model.ReconciliationReport, operator string) {
	if s.Events == nil {
		return
	}
	ev := queue.ReconciliationCompletedEvent{
		RunID:        run.ID,
		EventName:    run.EventName,
		VenueContext: run.VenueContext,
		Operator:     operator,
		GrandTotal:   run.GrandTotal,
		NetStock:     model.Total(rep.NetStock),
		Pending:      model.Total(rep.Pending),
		Delivered:    model.Total(rep.Delivered),
		TotalSold:    run.TotalSold,
		Warnings:     rep.Warnings,
		CompletedAt:  run.CreatedAt.Format(time.RFC3339),
	}
	for _, sf := range rep.Shortfalls {
		ev.Shortfalls = append(ev.Shortfalls, sf.String())
	}
	if err := s.Events.PublishCompleted(ctx, ev); err != nil {
		s.Logger.Warn("publish reconciliation event failed", "run_id", run.ID, "error", err)
	}
}

// Get loads a stored run.
func (s *Reconciler) Get(ctx context.Context, id string) (*model.ReconciliationRun, error) {
	return s.Runs.GetByID(ctx, id)
}

// List returns the newest runs.
func (s *Reconciler) List(ctx context.Context, limit int) ([]model.ReconciliationRun, error) {
	return s.Runs.ListRecent(ctx, limit)
}

func (s *Reconciler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
