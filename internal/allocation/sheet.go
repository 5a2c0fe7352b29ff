package allocation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

var (
	sheetSectorRe = regexp.MustCompile(`(?i)Sector:\s*(\S+)`)
	sheetRowRe    = regexp.MustCompile(`(?i)(.*Row:.*?Qty:\s*(\d+)\s*)\[(.*?)\]`)
)

// StockSheet is a stock report read back as allocation capacity.  Lines
// keeps the text verbatim so annotated rows can be put back in place.
type StockSheet struct {
	Lines []string
	Rows  []model.CapacityRow
	rowAt map[int]int
}

// ParseStockSheet reads a rendered stock report.  A "Sector: <S>" line
// opens a sector; each following "Row: ... Qty: <n> [<price>]" line
// becomes a capacity row of that sector.  Row lines before any sector are
// left as text.  canon maps sector labels to canonical keys; nil
// upper-cases them.
func ParseStockSheet(text string, canon func(string) string) *StockSheet {
	if canon == nil {
		canon = strings.ToUpper
	}
	s := &StockSheet{rowAt: make(map[int]int)}
	text = strings.TrimSpace(text)
	if text == "" {
		return s
	}
	s.Lines = strings.Split(text, "\n")

	current := ""
	for i, line := range s.Lines {
		line = strings.TrimRight(line, "\r")
		s.Lines[i] = line
		if m := sheetSectorRe.FindStringSubmatch(line); m != nil {
			current = canon(m[1])
		}
		m := sheetRowRe.FindStringSubmatch(line)
		if m == nil || current == "" {
			continue
		}
		qty, _ := strconv.Atoi(m[2])
		s.rowAt[i] = len(s.Rows)
		s.Rows = append(s.Rows, model.CapacityRow{
			Sector:        current,
			TotalQuantity: qty,
			Remaining:     qty,
			DisplayPrefix: m[1],
			Line:          line,
		})
	}
	return s
}

// Capacity returns a copy of the sheet's rows.
func (s *StockSheet) Capacity() []model.CapacityRow {
	return append([]model.CapacityRow(nil), s.Rows...)
}

// SeatsBySector sums row quantities per sector.
func (s *StockSheet) SeatsBySector() map[string]int {
	out := make(map[string]int)
	for _, r := range s.Rows {
		out[r.Sector] += r.TotalQuantity
	}
	return out
}

// Annotate re-emits the sheet with every capacity row replaced by its
// allocated form.  rows must be the allocation of this sheet's rows.
func (s *StockSheet) Annotate(rows []model.CapacityRow) []string {
	out := make([]string, len(s.Lines))
	for i, line := range s.Lines {
		if j, ok := s.rowAt[i]; ok && j < len(rows) {
			out[i] = rows[j].Annotated()
			continue
		}
		out[i] = line
	}
	return out
}
