package stock

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

// ErrNoTicketsFolder is returned when the event folder has no tickets
// subfolder.  The scan never falls back to the event folder itself.
var ErrNoTicketsFolder = errors.New("tickets folder not found")

// DefaultTicketsDirNames are the tickets folder names looked up, in order,
// case-insensitively.
var DefaultTicketsDirNames = []string{"- Tickets -", "tickets"}

// Options configures a Scanner.
type Options struct {
	// OddEven groups seats with a step of 2 instead of 1.
	OddEven bool
	// TicketsDirNames overrides DefaultTicketsDirNames.
	TicketsDirNames []string
	// Extensions lists the ticket file extensions; defaults to ".pdf".
	Extensions []string
	// Now stamps the inventory; defaults to time.Now.
	Now func() time.Time
}

// Scanner reads ticket folders into an Inventory.  It holds no mutable
// state and may be shared between goroutines.
type Scanner struct {
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// NewScanner builds a Scanner.  A nil logger discards output.
func NewScanner(opts Options, logger *slog.Logger) *Scanner {
	if len(opts.TicketsDirNames) == 0 {
		opts.TicketsDirNames = DefaultTicketsDirNames
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".pdf"}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Scanner{opts: opts, logger: logger, now: now}
}

// FindTicketsDir locates the tickets folder directly under eventRoot.
func FindTicketsDir(eventRoot string, names []string) (string, error) {
	if len(names) == 0 {
		names = DefaultTicketsDirNames
	}
	entries, err := os.ReadDir(eventRoot)
	if err != nil {
		return "", fmt.Errorf("read event folder: %w", err)
	}
	for _, want := range names {
		for _, e := range entries {
			if e.IsDir() && strings.EqualFold(e.Name(), want) {
				return filepath.Join(eventRoot, e.Name()), nil
			}
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNoTicketsFolder, eventRoot)
}

// Scan locates the tickets folder of an event and scans it.  The event
// name is the event folder's base name.
func (s *Scanner) Scan(eventRoot string) (*model.Inventory, error) {
	ticketsDir, err := FindTicketsDir(eventRoot, s.opts.TicketsDirNames)
	if err != nil {
		return nil, err
	}
	return s.ScanTickets(ticketsDir, filepath.Base(filepath.Clean(eventRoot)))
}

// ScanTickets scans an already located tickets folder.  Loose files form
// the "no folder" category; every immediate subfolder holding at least one
// ticket file forms its own category.  Subfolders are not descended into.
func (s *Scanner) ScanTickets(ticketsDir, eventName string) (*model.Inventory, error) {
	entries, err := os.ReadDir(ticketsDir)
	if err != nil {
		return nil, fmt.Errorf("read tickets folder: %w", err)
	}

	inv := &model.Inventory{
		EventName:   eventName,
		GeneratedAt: s.now(),
		OddEven:     s.opts.OddEven,
	}

	if loose := s.ticketFiles(entries); len(loose) > 0 {
		inv.Categories = append(inv.Categories, s.scanCategory(model.NoFolderCategory, loose))
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub, err := os.ReadDir(filepath.Join(ticketsDir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read category %q: %w", e.Name(), err)
		}
		files := s.ticketFiles(sub)
		if len(files) == 0 {
			continue
		}
		inv.Categories = append(inv.Categories, s.scanCategory(e.Name(), files))
	}

	for _, c := range inv.Categories {
		inv.GrandTotal += c.FileCount
	}
	s.logger.Info("stock scan finished",
		"event", eventName,
		"categories", len(inv.Categories),
		"files", inv.GrandTotal)
	return inv, nil
}

func (s *Scanner) ticketFiles(entries []os.DirEntry) []string {
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		for _, want := range s.opts.Extensions {
			if strings.EqualFold(ext, want) {
				out = append(out, e.Name())
				break
			}
		}
	}
	return out
}

func (s *Scanner) scanCategory(name string, files []string) model.CategoryBlock {
	block := model.CategoryBlock{
		Name:      name,
		FileCount: len(files),
		Sectors:   map[string]map[string][]model.SeatGroup{},
	}

	seats := map[string]map[string][]model.SeatToken{}
	prices := map[string]string{}
	for _, f := range files {
		tok, err := ParseSeat(f)
		if err != nil {
			s.logger.Debug("skipping ticket file", "category", name, "file", f, "error", err)
			block.Skipped = append(block.Skipped, f)
			continue
		}
		if seats[tok.Sector] == nil {
			seats[tok.Sector] = map[string][]model.SeatToken{}
		}
		seats[tok.Sector][tok.Row] = append(seats[tok.Sector][tok.Row], tok)

		key := tok.Sector + "|" + tok.Row
		if _, seen := prices[key]; !seen {
			prices[key] = ParseFaceValue(f)
		}
	}

	step := model.StepFor(s.opts.OddEven)
	for sector, rows := range seats {
		block.Sectors[sector] = map[string][]model.SeatGroup{}
		for row, tokens := range rows {
			groups := GroupConsecutive(tokens, step)
			for i := range groups {
				groups[i].Price = prices[sector+"|"+row]
			}
			block.Sectors[sector][row] = groups
		}
	}
	return block
}
