package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
	"github.com/iliyamo/ticket-stock-reconciler/internal/service"
	"github.com/iliyamo/ticket-stock-reconciler/internal/stock"
)

// ScanTimeout bounds one background scan.
const ScanTimeout = 2 * time.Minute

// StockHandler scans the tickets folder of an event below Root.
type StockHandler struct {
	Root   string
	Logger *slog.Logger
}

type scanReq struct {
	Path    string `json:"path"`
	OddEven bool   `json:"odd_even"`
}

type scanResp struct {
	Inventory *model.Inventory `json:"inventory"`
	Report    string           `json:"report"`
}

// Scan runs the inventory scan in the background and waits for its
// result.  A result arriving after the request is gone is dropped.
func (h *StockHandler) Scan(c echo.Context) error {
	var req scanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	path, err := service.ResolveEventPath(h.Root, req.Path)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), ScanTimeout)
	defer cancel()

	scanner := stock.NewScanner(stock.Options{OddEven: req.OddEven}, h.Logger)
	inv, err := scanner.ScanContext(ctx, path)
	switch {
	case errors.Is(err, stock.ErrNoTicketsFolder):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": stock.ErrNoTicketsFolder.Error()})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "scan abandoned"})
	case err != nil:
		h.Logger.Error("stock scan failed", "path", req.Path, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scan failed"})
	}
	return c.JSON(http.StatusOK, scanResp{Inventory: inv, Report: stock.Render(inv)})
}
