package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-stock-reconciler/internal/allocation"
	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
	"github.com/iliyamo/ticket-stock-reconciler/internal/sector"
)

// AllocationHandler allocates a listing sheet over a pasted stock report.
type AllocationHandler struct {
	Canon *sector.Canonicalizer
}

type allocateReq struct {
	StockText string                `json:"stock_text"`
	Context   string                `json:"context"`
	Event     string                `json:"event"`
	Rows      []allocation.SheetRow `json:"rows"`
}

type allocateResp struct {
	*model.AllocationResult
	Sheet []string `json:"sheet"`
}

// Allocate returns the annotated stock sheet, or 409 with the shortfall
// list when any sector is over-demanded.
func (h *AllocationHandler) Allocate(c echo.Context) error {
	var req allocateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.StockText) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stock_text required"})
	}
	rows, err := allocation.DemandSheet{Rows: req.Rows}.DemandRows()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	venue := req.Context
	if venue == "" {
		venue = sector.DetectContext(req.Event)
	}
	canon := h.Canon.Func(venue)

	sheet := allocation.ParseStockSheet(req.StockText, canon)
	res, err := allocation.Allocate(sheet.Capacity(), allocation.ExplodeDemands(rows, canon))
	var short *allocation.InsufficientStockError
	if errors.As(err, &short) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":      allocation.ErrInsufficientStock.Error(),
			"shortfalls": short.Shortfalls,
			"sheet":      allocation.ShortfallLines(short.Shortfalls),
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "allocation failed"})
	}
	return c.JSON(http.StatusOK, allocateResp{AllocationResult: res, Sheet: allocation.RenderLines(sheet, res)})
}
