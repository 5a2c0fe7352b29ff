package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/iliyamo/ticket-stock-reconciler/internal/allocation"
	"github.com/iliyamo/ticket-stock-reconciler/internal/config"
	"github.com/iliyamo/ticket-stock-reconciler/internal/platform"
	"github.com/iliyamo/ticket-stock-reconciler/internal/reconcile"
	"github.com/iliyamo/ticket-stock-reconciler/internal/sector"
	"github.com/iliyamo/ticket-stock-reconciler/internal/stock"
	"github.com/iliyamo/ticket-stock-reconciler/internal/utils"
)

func logger() *slog.Logger {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	return config.NewLogger(os.Stderr, "dev", level)
}

func canonicalizer(venueDB string) (*sector.Canonicalizer, error) {
	if venueDB == "" {
		return sector.NewCanonicalizer(nil), nil
	}
	db, err := sector.LoadBlockDB(venueDB)
	if err != nil {
		return nil, err
	}
	return sector.NewCanonicalizer(db), nil
}

func scanCmd(args []string, _ io.Reader, stdout io.Writer) error {
	fs := newFlagSet("scan")
	oddEven := fs.Bool("odd-even", false, "group seats with a step of 2")
	ticketsDirs := fs.StringSlice("tickets-dir", nil, "tickets folder names (default \"- Tickets -\",tickets)")
	asJSON := fs.Bool("json", false, "print the inventory as JSON")
	dir, err := oneArg(fs, args, "event directory")
	if err != nil {
		return err
	}

	inv, err := stock.NewScanner(stock.Options{OddEven: *oddEven, TicketsDirNames: *ticketsDirs}, logger()).Scan(dir)
	if err != nil {
		return err
	}
	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(inv)
	}
	_, err = fmt.Fprintln(stdout, stock.Render(inv))
	return err
}

func allocateCmd(args []string, _ io.Reader, stdout io.Writer) error {
	fs := newFlagSet("allocate")
	stockPath := fs.String("stock", "", "stock report text file")
	demandPath := fs.String("demand", "", "listing sheet (.yaml, .json or .jsonc)")
	venue := fs.String("context", "", "venue context (default: detected from --event or the report)")
	event := fs.String("event", "", "event name used to detect the venue context")
	venueDB := fs.String("venue-db", os.Getenv("VENUE_DB_PATH"), "venue block database")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *stockPath == "" || *demandPath == "" {
		return errors.New("allocate: --stock and --demand are required")
	}

	text, err := os.ReadFile(*stockPath)
	if err != nil {
		return err
	}
	rows, err := allocation.LoadDemandSheet(*demandPath)
	if err != nil {
		return err
	}
	canon, err := canonicalizer(*venueDB)
	if err != nil {
		return err
	}
	if *venue == "" {
		name := *event
		if name == "" {
			name = reportEvent(string(text))
		}
		*venue = sector.DetectContext(name)
	}
	fn := canon.Func(*venue)

	sheet := allocation.ParseStockSheet(string(text), fn)
	res, err := allocation.Allocate(sheet.Capacity(), allocation.ExplodeDemands(rows, fn))
	var short *allocation.InsufficientStockError
	if errors.As(err, &short) {
		fmt.Fprintln(stdout, strings.Join(allocation.ShortfallLines(short.Shortfalls), "\n"))
		return errShortfall
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, allocation.Render(sheet, res))
	return err
}

// reportEvent returns the event name from the first line of a stock report.
func reportEvent(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	if _, name, ok := strings.Cut(line, "EVENT:"); ok {
		return strings.TrimSpace(name)
	}
	return ""
}

func reconcileCmd(args []string, _ io.Reader, stdout io.Writer) error {
	fs := newFlagSet("reconcile")
	oddEven := fs.Bool("odd-even", false, "group seats with a step of 2")
	demandPath := fs.String("demand", "", "listing sheet to allocate over the stock")
	venueDB := fs.String("venue-db", os.Getenv("VENUE_DB_PATH"), "venue block database")
	dir, err := oneArg(fs, args, "event directory")
	if err != nil {
		return err
	}

	canon, err := canonicalizer(*venueDB)
	if err != nil {
		return err
	}
	opts := reconcile.Options{OddEven: *oddEven}
	if *demandPath != "" {
		if opts.Demand, err = allocation.LoadDemandSheet(*demandPath); err != nil {
			return err
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	rep, err := reconcile.NewBuilder(canon, logger()).Build(abs, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, reconcile.Render(rep))
	return err
}

func resolveCmd(args []string, _ io.Reader, stdout io.Writer) error {
	fs := newFlagSet("resolve")
	venue := fs.String("context", "", "venue context")
	event := fs.String("event", "", "event name used to detect the venue context")
	venueDB := fs.String("venue-db", os.Getenv("VENUE_DB_PATH"), "venue block database")
	label, err := oneArg(fs, args, "sector label")
	if err != nil {
		return err
	}
	canon, err := canonicalizer(*venueDB)
	if err != nil {
		return err
	}
	if *venue == "" {
		*venue = sector.DetectContext(*event)
	}
	_, err = fmt.Fprintln(stdout, canon.Canonicalize(label, *venue))
	return err
}

func classifyCmd(args []string, _ io.Reader, stdout io.Writer) error {
	fs := newFlagSet("classify")
	pdfs := fs.Int("pdfs", 0, "ticket files in the folder, used when the name has no quantity")
	name, err := oneArg(fs, args, "folder name")
	if err != nil {
		return err
	}
	o := platform.ParseOrderFolder(name, *pdfs)
	_, err = fmt.Fprintf(stdout, "platform: %s\nstatus:   %s\nsector:   %s\nquantity: %d\n",
		o.Platform, o.Status.Label(), o.Sector, o.Quantity)
	return err
}

func hashPasswordCmd(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := newFlagSet("hash-password")
	cost := fs.Int("cost", 0, "bcrypt cost (default 10)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var plain string
	switch fs.NArg() {
	case 0:
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		plain = strings.TrimRight(line, "\r\n")
	case 1:
		plain = fs.Arg(0)
	default:
		return errors.New("hash-password: expected at most one password")
	}
	if plain == "" {
		return errors.New("hash-password: empty password")
	}

	hash, err := utils.HashPassword(plain, *cost)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, hash)
	return err
}
