// Package allocation assigns declared marketplace demand to physical stock
// rows and reports what is left over.
//
// Allocation runs in three passes over the demands in their input order:
// exact match, first row that fits without splitting, then splitting the
// demand over successive rows.  A sector-level capacity check runs first
// and blocks the whole allocation when any sector is over-demanded.
package allocation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

// ErrInsufficientStock is matched by *InsufficientStockError.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError lists every sector whose demand exceeds its
// capacity.  No allocation is produced when it is returned.
type InsufficientStockError struct {
	Shortfalls []model.Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		parts[i] = s.String()
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientStock, strings.Join(parts, "; "))
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// CheckCapacity compares total demand with total capacity per sector and
// returns the over-demanded sectors sorted by name.
func CheckCapacity(rows []model.CapacityRow, demands []model.Demand) []model.Shortfall {
	capacity := make(map[string]int)
	for _, r := range rows {
		capacity[r.Sector] += r.TotalQuantity
	}
	demanded := make(map[string]int)
	for _, d := range demands {
		if d.Quantity > 0 {
			demanded[d.Sector] += d.Quantity
		}
	}

	var out []model.Shortfall
	for sector, need := range demanded {
		if avail := capacity[sector]; need > avail {
			out = append(out, model.Shortfall{Sector: sector, Demanded: need, Available: avail})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sector < out[j].Sector })
	return out
}

// Allocate distributes demands over rows.  The input slices are not
// modified; the result carries fresh copies of the rows in input order.
// When the capacity check fails it returns an *InsufficientStockError.
func Allocate(rows []model.CapacityRow, demands []model.Demand) (*model.AllocationResult, error) {
	if sf := CheckCapacity(rows, demands); len(sf) > 0 {
		return nil, &InsufficientStockError{Shortfalls: sf}
	}

	stock := make([]model.CapacityRow, len(rows))
	for i, r := range rows {
		r.Remaining = r.TotalQuantity
		r.Allocations = nil
		stock[i] = r
	}

	open := make([]int, 0, len(demands))
	left := make([]int, len(demands))
	listed := 0
	for i, d := range demands {
		if d.Quantity <= 0 {
			continue
		}
		left[i] = d.Quantity
		listed += d.Quantity
		open = append(open, i)
	}

	take := func(r *model.CapacityRow, d model.Demand, qty int) {
		r.Allocations = append(r.Allocations, model.AllocationTag{Platform: d.Platform, Quantity: qty})
		r.Remaining -= qty
	}

	// exact match
	for _, i := range open {
		d := demands[i]
		for j := range stock {
			if stock[j].Sector == d.Sector && stock[j].Remaining == left[i] {
				take(&stock[j], d, left[i])
				left[i] = 0
				break
			}
		}
	}

	// first fit, by row order
	for _, i := range open {
		if left[i] == 0 {
			continue
		}
		d := demands[i]
		for j := range stock {
			if stock[j].Sector == d.Sector && stock[j].Remaining >= left[i] {
				take(&stock[j], d, left[i])
				left[i] = 0
				break
			}
		}
	}

	// split
	for _, i := range open {
		if left[i] == 0 {
			continue
		}
		d := demands[i]
		for j := range stock {
			if left[i] == 0 {
				break
			}
			if stock[j].Sector == d.Sector && stock[j].Remaining > 0 {
				n := min(left[i], stock[j].Remaining)
				take(&stock[j], d, n)
				left[i] -= n
			}
		}
	}

	res := &model.AllocationResult{Rows: stock, Listed: listed}
	for _, r := range stock {
		switch {
		case len(r.Allocations) == 0 && r.TotalQuantity > 0:
			res.Missing = append(res.Missing, model.MissingStock{Sector: r.Sector, Row: rowLabel(r), Quantity: r.TotalQuantity, Full: true})
		case r.Remaining > 0:
			res.Missing = append(res.Missing, model.MissingStock{Sector: r.Sector, Row: rowLabel(r), Quantity: r.Remaining})
		}
	}
	return res, nil
}

// rowLabel identifies a capacity row by its stock line text.
func rowLabel(r model.CapacityRow) string {
	return strings.TrimSpace(r.DisplayPrefix)
}
