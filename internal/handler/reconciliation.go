package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-stock-reconciler/internal/allocation"
	"github.com/iliyamo/ticket-stock-reconciler/internal/middleware"
	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
	"github.com/iliyamo/ticket-stock-reconciler/internal/repository"
	"github.com/iliyamo/ticket-stock-reconciler/internal/service"
)

// ReconciliationHandler runs and lists reconciliations.
type ReconciliationHandler struct {
	Svc *service.Reconciler
}

type reconcileReq struct {
	Path    string                  `json:"path"`
	OddEven bool                    `json:"odd_even"`
	Demand  *allocation.DemandSheet `json:"demand"`
}

type reconcileResp struct {
	Run    *model.ReconciliationRun    `json:"run"`
	Report *model.ReconciliationReport `json:"report"`
}

// Create reconciles one event folder and stores the run.
func (h *ReconciliationHandler) Create(c echo.Context) error {
	var req reconcileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var demand []allocation.DemandRow
	if req.Demand != nil {
		rows, err := req.Demand.DemandRows()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		demand = rows
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), ScanTimeout)
	defer cancel()

	run, rep, err := h.Svc.Reconcile(ctx, service.ReconcileRequest{
		Path:     req.Path,
		OddEven:  req.OddEven,
		Demand:   demand,
		Operator: middleware.Operator(c),
	})
	switch {
	case errors.Is(err, service.ErrInvalidPath):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case err != nil:
		h.Svc.Logger.Error("reconciliation failed", "path", req.Path, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reconciliation failed"})
	}
	return c.JSON(http.StatusCreated, reconcileResp{Run: run, Report: rep})
}

// List returns the most recent runs; ?limit= caps the count.
func (h *ReconciliationHandler) List(c echo.Context) error {
	limit := 50
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	runs, err := h.Svc.List(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if runs == nil {
		runs = []model.ReconciliationRun{}
	}
	return c.JSON(http.StatusOK, echo.Map{"runs": runs})
}

// Get returns one stored run with its report.
func (h *ReconciliationHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	run, err := h.Svc.Get(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrRunNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "run not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, run)
}
