package allocation

import (
	"strings"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

const (
	shortfallHeader = "⚠️ STOP! INSUFFICIENT STOCK - PLEASE FIX:"
	missingHeader   = "⚠️ WARNING: MISSING ITEMS - YOU HAVE NOT LISTED EVERYTHING:"
)

// RenderLines is the annotated sheet followed by the missing-stock
// warning when some rows were not fully listed.
func RenderLines(sheet *StockSheet, res *model.AllocationResult) []string {
	lines := sheet.Annotate(res.Rows)
	if len(res.Missing) == 0 {
		return lines
	}
	lines = append(lines, "", "", missingHeader)
	for _, m := range res.Missing {
		lines = append(lines, m.String())
	}
	return lines
}

// ShortfallLines renders a blocked allocation.
func ShortfallLines(sf []model.Shortfall) []string {
	lines := []string{shortfallHeader, ""}
	for _, s := range sf {
		lines = append(lines, s.String())
	}
	return lines
}

// Render joins RenderLines.
func Render(sheet *StockSheet, res *model.AllocationResult) string {
	return strings.Join(RenderLines(sheet, res), "\n")
}
