// Package queue defines the messages exchanged over RabbitMQ and the
// consumer that keeps the reconciliation log.
package queue

// CompletedQueue is the durable queue reconciliation events travel on.
const CompletedQueue = "reconciliation.completed"

// ReconciliationCompletedEvent is published after a reconciliation run
// is stored.  It carries enough for the log consumer without a database
// lookup.
type ReconciliationCompletedEvent struct {
	RunID        string   `json:"run_id"`
	EventName    string   `json:"event_name"`
	VenueContext string   `json:"venue_context"`
	Operator     string   `json:"operator"`
	GrandTotal   int      `json:"grand_total"`
	NetStock     int      `json:"net_stock"`
	Pending      int      `json:"pending"`
	Delivered    int      `json:"delivered"`
	TotalSold    int      `json:"total_sold"`
	Warnings     []string `json:"warnings"`
	Shortfalls   []string `json:"shortfalls"`
	CompletedAt  string   `json:"completed_at"`
}
