package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-stock-reconciler/internal/platform"
	"github.com/iliyamo/ticket-stock-reconciler/internal/sector"
)

// LookupHandler exposes sector canonicalization, venue detection and
// platform classification for single labels.
type LookupHandler struct {
	Canon *sector.Canonicalizer
}

// ResolveSector canonicalizes ?label= within ?context=, or within the
// venue detected from ?event= when no context is given.
func (h *LookupHandler) ResolveSector(c echo.Context) error {
	label := c.QueryParam("label")
	if strings.TrimSpace(label) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "label required"})
	}
	venue := c.QueryParam("context")
	if venue == "" {
		venue = sector.DetectContext(c.QueryParam("event"))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"label":     label,
		"context":   venue,
		"canonical": h.Canon.Canonicalize(label, venue),
	})
}

// DetectContext returns the venue context of ?event=.
func (h *LookupHandler) DetectContext(c echo.Context) error {
	event := c.QueryParam("event")
	if strings.TrimSpace(event) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event required"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event":   event,
		"context": sector.DetectContext(event),
		"known":   h.Canon.Contexts(),
	})
}

// ClassifyPlatform reads an order folder name given as ?label=.
// ?pdfs= is the ticket count used when the name declares no quantity.
func (h *LookupHandler) ClassifyPlatform(c echo.Context) error {
	label := c.QueryParam("label")
	if strings.TrimSpace(label) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "label required"})
	}
	pdfs := 0
	if s := c.QueryParam("pdfs"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid pdfs"})
		}
		pdfs = n
	}
	order := platform.ParseOrderFolder(label, pdfs)
	return c.JSON(http.StatusOK, echo.Map{
		"label":             label,
		"platform":          order.Platform,
		"status":            order.Status,
		"sector":            order.Sector,
		"quantity":          order.Quantity,
		"quantity_declared": order.Declared,
	})
}
