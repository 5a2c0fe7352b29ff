package model

import "time"

// SectorCount is one line of a per-sector tally.  Physical and Requested
// are only filled for net stock, where Quantity = Physical - Requested.
type SectorCount struct {
	Sector    string `json:"sector"`
	Quantity  int    `json:"quantity"`
	Physical  int    `json:"physical,omitempty"`
	Requested int    `json:"requested,omitempty"`
}

// StatusBreakdown is the part of a platform's sales in one order status.
type StatusBreakdown struct {
	Status   OrderStatus   `json:"status"`
	Quantity int           `json:"quantity"`
	Sectors  []SectorCount `json:"sectors"`
}

// PlatformSummary aggregates pending orders of one marketplace.
type PlatformSummary struct {
	Platform Platform          `json:"platform"`
	Total    int               `json:"total"`
	Statuses []StatusBreakdown `json:"statuses"`
}

// Deduction lists the unfilled order folders subtracted from a sector's
// net stock, each rendered as "<folder> (x<qty>)".
type Deduction struct {
	Sector  string   `json:"sector"`
	Folders []string `json:"folders"`
}

// ReconciliationReport is the consolidated stock / pending / delivered
// picture of one event folder.
type ReconciliationReport struct {
	EventName    string            `json:"event_name"`
	VenueContext string            `json:"venue_context,omitempty"`
	GeneratedAt  time.Time         `json:"generated_at"`
	Inventory    *Inventory        `json:"inventory,omitempty"`
	NetStock     []SectorCount     `json:"net_stock"`
	Pending      []SectorCount     `json:"pending"`
	Delivered    []SectorCount     `json:"delivered"`
	Platforms    []PlatformSummary `json:"platforms"`
	Deductions   []Deduction       `json:"deductions"`
	Warnings     []string          `json:"warnings"`
	Allocation   *AllocationResult `json:"allocation,omitempty"`
	Shortfalls   []Shortfall       `json:"shortfalls,omitempty"`
	// AllocationSheet is the stock report with allocation tags applied.
	AllocationSheet []string `json:"allocation_sheet,omitempty"`
}

// Total sums the quantities of a tally.
func Total(counts []SectorCount) int {
	n := 0
	for _, c := range counts {
		n += c.Quantity
	}
	return n
}

// TotalSold sums pending orders across platforms.
func (r *ReconciliationReport) TotalSold() int {
	n := 0
	for _, p := range r.Platforms {
		n += p.Total
	}
	return n
}
