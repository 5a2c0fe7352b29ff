package model

import (
	"encoding/json"
	"time"
)

// ReconciliationRun is the persisted audit record of one reconciliation.
// Summary holds the JSON encoded ReconciliationReport.
type ReconciliationRun struct {
	ID           string          `json:"id"`
	EventName    string          `json:"event_name"`
	VenueContext string          `json:"venue_context"`
	OddEven      bool            `json:"odd_even"`
	GrandTotal   int             `json:"grand_total"`
	TotalSold    int             `json:"total_sold"`
	ReportText   string          `json:"report_text,omitempty"`
	Summary      json.RawMessage `json:"summary,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
