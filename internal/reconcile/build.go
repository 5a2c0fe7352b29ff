// Package reconcile assembles the stock, pending, delivered and platform
// picture of one event folder.
//
// An event folder holds a tickets folder with the physical stock, an
// optional delivered folder, and one folder per marketplace order.  Order
// folders without tickets that are not marked as bought are stock
// requests and are deducted from net stock.
package reconcile

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/iliyamo/ticket-stock-reconciler/internal/allocation"
	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
	"github.com/iliyamo/ticket-stock-reconciler/internal/platform"
	"github.com/iliyamo/ticket-stock-reconciler/internal/sector"
	"github.com/iliyamo/ticket-stock-reconciler/internal/stock"
)

// Options tunes one reconciliation.
type Options struct {
	OddEven         bool
	TicketsDirNames []string
	// Demand, when set, is allocated against the scanned stock.
	Demand []allocation.DemandRow
}

// Builder produces ReconciliationReports.  It is safe for concurrent use.
type Builder struct {
	canon  *sector.Canonicalizer
	logger *slog.Logger
	now    func() time.Time
}

// NewBuilder returns a Builder resolving sectors through canon.  A nil
// logger discards output.
func NewBuilder(canon *sector.Canonicalizer, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{canon: canon, logger: logger, now: time.Now}
}

var deliveredFileRe = regexp.MustCompile(`(?i)(.+?)-([A-Z0-9]+)-([A-Z0-9]+)\.pdf`)

type platformKey struct {
	platform model.Platform
	status   model.OrderStatus
}

// Build reconciles the event folder at root.
func (b *Builder) Build(root string, opts Options) (*model.ReconciliationReport, error) {
	title := EventTitle(root)
	venue := sector.DetectContext(title)
	canon := b.canon.Func(venue)

	rep := &model.ReconciliationReport{
		EventName:    title,
		VenueContext: venue,
		GeneratedAt:  b.now(),
	}

	dirs, err := subdirs(root)
	if err != nil {
		return nil, fmt.Errorf("read event folder: %w", err)
	}

	delivered := ""
	for _, d := range dirs {
		if isDeliveredDir(d) {
			delivered = d
			break
		}
	}

	ticketsDir, err := stock.FindTicketsDir(root, opts.TicketsDirNames)
	switch {
	case errors.Is(err, stock.ErrNoTicketsFolder):
		ticketsDir = ""
	case err != nil:
		return nil, err
	}

	physical := map[string]int{}
	if ticketsDir != "" {
		scanner := stock.NewScanner(stock.Options{OddEven: opts.OddEven, TicketsDirNames: opts.TicketsDirNames, Now: b.now}, b.logger)
		inv, err := scanner.ScanTickets(ticketsDir, title)
		if err != nil {
			return nil, err
		}
		rep.Inventory = inv
		for raw, n := range inv.SeatsBySector() {
			physical[canon(raw)] += n
		}
	}

	deliveredBy := map[string]int{}
	if delivered != "" {
		err := walkPDFs(filepath.Join(root, delivered), func(path string) {
			sec := filepath.Base(filepath.Dir(path))
			if m := deliveredFileRe.FindStringSubmatch(filepath.Base(path)); m != nil {
				sec = m[1]
			}
			deliveredBy[canon(sec)]++
		})
		if err != nil {
			return nil, fmt.Errorf("read delivered folder: %w", err)
		}
	}

	pending := map[string]int{}
	requests := map[string]int{}
	deducted := map[string][]string{}
	sales := map[platformKey]map[string]int{}
	for _, d := range dirs {
		full := filepath.Join(root, d)
		if d == delivered || full == ticketsDir || isIgnored(d) {
			continue
		}
		if isStockDir(d) {
			if ticketsDir != "" {
				continue
			}
			err := walkPDFs(full, func(path string) {
				if sec, _, _, ok := stock.ParseSeatTriple(path); ok {
					physical[canon(sec)]++
				}
			})
			if err != nil {
				return nil, fmt.Errorf("read stock folder %q: %w", d, err)
			}
			continue
		}

		pdfs, err := countPDFs(full)
		if err != nil {
			return nil, fmt.Errorf("read order folder %q: %w", d, err)
		}
		order := platform.ParseOrderFolder(d, pdfs)
		sec := canon(order.Sector)
		qty := order.Quantity
		if pdfs > 0 {
			qty = pdfs
		}
		pending[sec] += qty

		key := platformKey{order.Platform, order.Status}
		if sales[key] == nil {
			sales[key] = map[string]int{}
		}
		sales[key][sec] += qty

		if pdfs == 0 && !platform.IsBought(d) {
			requests[sec] += order.Quantity
			deducted[sec] = append(deducted[sec], fmt.Sprintf("%s (x%d)", d, order.Quantity))
		}
	}

	rep.NetStock = netStock(physical, requests)
	rep.Pending = counts(pending)
	rep.Delivered = counts(deliveredBy)
	rep.Platforms = summarize(sales)
	for _, s := range sortedKeys(deducted) {
		rep.Deductions = append(rep.Deductions, model.Deduction{Sector: s, Folders: deducted[s]})
	}
	for _, s := range sortedKeys(physical, requests) {
		if n := physical[s] - requests[s]; n < 0 {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("WARNING: Negative Stock for %s (%d). Check mappings or missing stock tickets.", s, n))
		}
	}

	if len(opts.Demand) > 0 {
		if err := b.allocate(rep, opts.Demand, canon); err != nil {
			return nil, err
		}
	}

	b.logger.Info("reconciliation finished",
		"event", title,
		"context", venue,
		"stock", model.Total(rep.NetStock),
		"pending", model.Total(rep.Pending),
		"delivered", model.Total(rep.Delivered),
		"warnings", len(rep.Warnings))
	return rep, nil
}

func (b *Builder) allocate(rep *model.ReconciliationReport, rows []allocation.DemandRow, canon func(string) string) error {
	if rep.Inventory == nil {
		rep.Warnings = append(rep.Warnings, "Allocation skipped: no tickets folder.")
		return nil
	}
	sheet := allocation.ParseStockSheet(stock.Render(rep.Inventory), canon)
	res, err := allocation.Allocate(sheet.Capacity(), allocation.ExplodeDemands(rows, canon))
	var short *allocation.InsufficientStockError
	switch {
	case errors.As(err, &short):
		rep.Shortfalls = short.Shortfalls
		rep.AllocationSheet = allocation.ShortfallLines(short.Shortfalls)
		b.logger.Warn("allocation blocked", "event", rep.EventName, "sectors", len(short.Shortfalls))
		return nil
	case err != nil:
		return err
	}
	rep.Allocation = res
	rep.AllocationSheet = allocation.RenderLines(sheet, res)
	return nil
}

func netStock(physical, requests map[string]int) []model.SectorCount {
	var out []model.SectorCount
	for _, s := range sortedKeys(physical, requests) {
		n := physical[s] - requests[s]
		if n == 0 {
			continue
		}
		out = append(out, model.SectorCount{Sector: s, Quantity: n, Physical: physical[s], Requested: requests[s]})
	}
	return out
}

func counts(m map[string]int) []model.SectorCount {
	var out []model.SectorCount
	for _, s := range sortedKeys(m) {
		if m[s] != 0 {
			out = append(out, model.SectorCount{Sector: s, Quantity: m[s]})
		}
	}
	return out
}

func summarize(sales map[platformKey]map[string]int) []model.PlatformSummary {
	byPlatform := map[model.Platform]*model.PlatformSummary{}
	for key, sectors := range sales {
		ps := byPlatform[key.platform]
		if ps == nil {
			ps = &model.PlatformSummary{Platform: key.platform}
			byPlatform[key.platform] = ps
		}
		sb := model.StatusBreakdown{Status: key.status, Sectors: counts(sectors)}
		sb.Quantity = model.Total(sb.Sectors)
		ps.Statuses = append(ps.Statuses, sb)
		ps.Total += sb.Quantity
	}

	out := make([]model.PlatformSummary, 0, len(byPlatform))
	for _, ps := range byPlatform {
		sort.Slice(ps.Statuses, func(i, j int) bool {
			return ps.Statuses[i].Status.Label() < ps.Statuses[j].Status.Label()
		})
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Platform.String() < out[j].Platform.String() })
	return out
}

func sortedKeys[V any](maps ...map[string]V) []string {
	seen := map[string]bool{}
	var keys []string
	for _, m := range maps {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
