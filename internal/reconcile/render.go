package reconcile

import (
	"fmt"
	"strings"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

// DateLayout is the report date format.
const DateLayout = "02/01/2006"

const (
	rule      = "-------------------------"
	debugRule = "---------------------------"
)

// RenderLines lays out a report as plain text.
func RenderLines(r *model.ReconciliationReport) []string {
	lines := []string{
		fmt.Sprintf("*Report generated: %s*", r.GeneratedAt.Format(DateLayout)),
		fmt.Sprintf("**Event: %s**", r.EventName),
	}
	if r.VenueContext != "" {
		lines = append(lines, "Context: "+r.VenueContext)
	}
	lines = append(lines, "")

	lines = append(lines, "*Stock*:")
	for _, c := range r.NetStock {
		if c.Requested > 0 {
			lines = append(lines, fmt.Sprintf("%s: %d (%d Phys - %d Requests)", c.Sector, c.Quantity, c.Physical, c.Requested))
		} else {
			lines = append(lines, fmt.Sprintf("%s: %d", c.Sector, c.Quantity))
		}
	}
	lines = append(lines, rule, fmt.Sprintf("*TOTAL Stock*        : %d", model.Total(r.NetStock)), "")

	lines = append(lines, section("Pending", r.Pending)...)
	lines = append(lines, section("Delivered", r.Delivered)...)

	lines = append(lines, "*Platform Sales (Summary)*", rule)
	for _, p := range r.Platforms {
		for i, s := range p.Statuses {
			parts := make([]string, len(s.Sectors))
			for j, c := range s.Sectors {
				parts[j] = fmt.Sprintf("x%d %s", c.Quantity, c.Sector)
			}
			entry := fmt.Sprintf("%s %d (%s)", s.Status.Label(), s.Quantity, strings.Join(parts, " + "))
			if i == 0 {
				lines = append(lines, fmt.Sprintf("%-10s        : %s", p.Platform, entry))
			} else {
				lines = append(lines, "              "+entry)
			}
		}
	}
	lines = append(lines, rule, fmt.Sprintf("*TOTAL SOLD*          : %d", r.TotalSold()), "")

	lines = append(lines, "*Stock Deduction Logic (Debug)*:", debugRule)
	if len(r.Deductions) == 0 {
		lines = append(lines, "No pending requests subtracted.")
	}
	for _, d := range r.Deductions {
		lines = append(lines, fmt.Sprintf("Sector %s deducted folders:", d.Sector))
		for _, f := range d.Folders {
			lines = append(lines, " - "+f)
		}
	}
	lines = append(lines, debugRule)
	lines = append(lines, r.Warnings...)

	if len(r.AllocationSheet) > 0 {
		lines = append(lines, "", "*Listing Allocation*:")
		lines = append(lines, r.AllocationSheet...)
	}
	return lines
}

func section(title string, counts []model.SectorCount) []string {
	lines := []string{fmt.Sprintf("*%s*:", title), rule}
	for _, c := range counts {
		lines = append(lines, fmt.Sprintf("%s: %d", c.Sector, c.Quantity))
	}
	return append(lines, rule, fmt.Sprintf("*TOTAL %s*        : %d", title, model.Total(counts)), "")
}

// Render joins RenderLines.
func Render(r *model.ReconciliationReport) string {
	return strings.Join(RenderLines(r), "\n")
}
