package stock

import (
	"context"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

// ScanResult is delivered once by Start.
type ScanResult struct {
	Inventory *model.Inventory
	Err       error
}

// Start runs Scan on its own goroutine and delivers the complete result on
// the returned channel.  The channel is buffered so an abandoned scan
// finishes without blocking; its result is simply never read.
func (s *Scanner) Start(eventRoot string) <-chan ScanResult {
	out := make(chan ScanResult, 1)
	go func() {
		defer close(out)
		inv, err := s.Scan(eventRoot)
		out <- ScanResult{Inventory: inv, Err: err}
	}()
	return out
}

// ScanContext waits for a background scan or for ctx to end, whichever
// comes first.  A scan outliving ctx is discarded, never partially read.
func (s *Scanner) ScanContext(ctx context.Context, eventRoot string) (*model.Inventory, error) {
	select {
	case res := <-s.Start(eventRoot):
		return res.Inventory, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
