package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-stock-reconciler/internal/handler"
	"github.com/iliyamo/ticket-stock-reconciler/internal/middleware"
	"github.com/iliyamo/ticket-stock-reconciler/internal/utils"
)

// OperatorHandlers groups the handlers mounted behind operator auth.
type OperatorHandlers struct {
	Stock           *handler.StockHandler
	Allocations     *handler.AllocationHandler
	Reconciliations *handler.ReconciliationHandler
	Lookup          *handler.LookupHandler
}

// RegisterOperator registers the OPERATOR-scoped endpoints under /v1.
// limit applies to every route and cache to the read-only ones; either may
// be nil.
func RegisterOperator(e *echo.Echo, h OperatorHandlers, jwtSecret string, limit, cache echo.MiddlewareFunc) {
	mw := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(utils.RoleOperator),
	}
	if limit != nil {
		mw = append(mw, limit)
	}
	g := e.Group("/v1", mw...)

	var cached []echo.MiddlewareFunc
	if cache != nil {
		cached = append(cached, cache)
	}

	g.POST("/stock/scan", h.Stock.Scan)
	g.POST("/allocations", h.Allocations.Allocate)

	g.POST("/reconciliations", h.Reconciliations.Create)
	g.GET("/reconciliations", h.Reconciliations.List)
	g.GET("/reconciliations/:id", h.Reconciliations.Get, cached...)

	g.GET("/sectors/resolve", h.Lookup.ResolveSector, cached...)
	g.GET("/sectors/context", h.Lookup.DetectContext, cached...)
	g.GET("/platforms/classify", h.Lookup.ClassifyPlatform, cached...)
}
