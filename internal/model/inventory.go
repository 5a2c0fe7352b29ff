package model

import (
	"sort"
	"strconv"
	"time"
)

// NoFolderCategory names the synthetic category holding ticket files that
// sit directly inside the tickets folder.
const NoFolderCategory = "- Extra without folder -"

// CategoryBlock is one scanned ticket folder.  FileCount counts every
// matching file found, including files whose names could not be parsed;
// Sectors only holds the seats that parsed.
type CategoryBlock struct {
	Name      string                            `json:"name"`
	FileCount int                               `json:"file_count"`
	Sectors   map[string]map[string][]SeatGroup `json:"sectors"`
	Skipped   []string                          `json:"skipped,omitempty"`
}

// SectorNames returns the sector keys in ascending order.
func (c CategoryBlock) SectorNames() []string {
	names := make([]string, 0, len(c.Sectors))
	for s := range c.Sectors {
		names = append(names, s)
	}
	sort.Strings(names)
	return names
}

// RowLabels returns the rows of a sector, numerically when both labels are
// integers and lexically otherwise.
func (c CategoryBlock) RowLabels(sector string) []string {
	rows := make([]string, 0, len(c.Sectors[sector]))
	for r := range c.Sectors[sector] {
		rows = append(rows, r)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rowLess(rows[i], rows[j]) })
	return rows
}

// SeatCount is the number of parsed seats in the category.
func (c CategoryBlock) SeatCount() int {
	n := 0
	for _, rows := range c.Sectors {
		for _, groups := range rows {
			for _, g := range groups {
				n += g.Quantity
			}
		}
	}
	return n
}

func rowLess(a, b string) bool {
	n1, err1 := strconv.Atoi(a)
	n2, err2 := strconv.Atoi(b)
	if err1 == nil && err2 == nil {
		return n1 < n2
	}
	return a < b
}

// Inventory is the full result of one scan of a tickets folder.
type Inventory struct {
	EventName   string          `json:"event_name"`
	GeneratedAt time.Time       `json:"generated_at"`
	OddEven     bool            `json:"odd_even"`
	GrandTotal  int             `json:"grand_total"`
	Categories  []CategoryBlock `json:"categories"`
}

// SeatsBySector sums parsed seats per raw sector key across all categories.
func (inv *Inventory) SeatsBySector() map[string]int {
	out := map[string]int{}
	if inv == nil {
		return out
	}
	for _, c := range inv.Categories {
		for sector, rows := range c.Sectors {
			for _, groups := range rows {
				for _, g := range groups {
					out[sector] += g.Quantity
				}
			}
		}
	}
	return out
}
