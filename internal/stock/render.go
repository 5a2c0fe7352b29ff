package stock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

// ReportTimeLayout is the timestamp format of the report header.
const ReportTimeLayout = "2006-01-02 15:04"

// RenderLines lays out an Inventory as the plain-text stock report.  The
// sector and row lines are the format ParseStockSheet in the allocation
// package reads back.
func RenderLines(inv *model.Inventory) []string {
	lines := []string{
		fmt.Sprintf("⚽ EVENT: %s", inv.EventName),
		fmt.Sprintf("📅 DATE: %s", inv.GeneratedAt.Format(ReportTimeLayout)),
		fmt.Sprintf("🥅 GRAND TOTAL: %d", inv.GrandTotal),
		"========================================",
		"",
	}
	for _, c := range inv.Categories {
		lines = append(lines,
			fmt.Sprintf("📂 %s", c.Name),
			fmt.Sprintf("🥅 TOTAL: %d", c.FileCount))
		for _, sector := range c.SectorNames() {
			var counts, details []string
			total := 0
			for _, row := range c.RowLabels(sector) {
				for _, g := range c.Sectors[sector][row] {
					total += g.Quantity
					counts = append(counts, strconv.Itoa(g.Quantity))
					details = append(details, RowLine(row, g))
				}
			}
			lines = append(lines, fmt.Sprintf("🎫 Sector: %s Total: %d | %s", sector, total, strings.Join(counts, "+")))
			lines = append(lines, details...)
		}
		lines = append(lines, "")
	}
	return lines
}

// RowLine renders the detail line of one seat group.
func RowLine(row string, g model.SeatGroup) string {
	price := g.Price
	if price == "" {
		price = model.NoFaceValue
	}
	return fmt.Sprintf("💺Row: %s Seat: %s Qty: %d [%s]", row, g.Range(), g.Quantity, price)
}

// Render returns the stock report as one string.
func Render(inv *model.Inventory) string {
	return strings.Join(RenderLines(inv), "\n")
}
