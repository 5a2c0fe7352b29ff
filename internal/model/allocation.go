package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AllocationTag records one slice of a capacity row handed to a platform.
type AllocationTag struct {
	Platform Platform `json:"platform"`
	Quantity int      `json:"quantity"`
}

func (t AllocationTag) String() string {
	return fmt.Sprintf("X%d %s", t.Quantity, t.Platform)
}

// CapacityRow is one line of physical stock available for allocation.
// Remaining only decreases and the sum of allocated quantities plus
// Remaining always equals TotalQuantity.
//
// Fields:
//  Sector        – canonical sector key.
//  TotalQuantity – seats in the row when it was read.
//  Remaining     – seats not yet allocated.
//  DisplayPrefix – stock line text preceding the price bracket.
//  Line          – the full stock line, re-emitted when nothing is allocated.
//  Allocations   – tags in consumption order.
type CapacityRow struct {
	Sector        string          `json:"sector"`
	TotalQuantity int             `json:"total_quantity"`
	Remaining     int             `json:"remaining"`
	DisplayPrefix string          `json:"display_prefix"`
	Line          string          `json:"line,omitempty"`
	Allocations   []AllocationTag `json:"allocations"`
}

// Allocated sums the quantities of the row's tags.
func (r CapacityRow) Allocated() int {
	n := 0
	for _, t := range r.Allocations {
		n += t.Quantity
	}
	return n
}

// Annotated renders the row with its allocation tags, or returns the
// original line when nothing was allocated.
func (r CapacityRow) Annotated() string {
	if len(r.Allocations) == 0 {
		if r.Line != "" {
			return r.Line
		}
		return r.DisplayPrefix
	}
	parts := make([]string, len(r.Allocations))
	for i, t := range r.Allocations {
		parts[i] = t.String()
	}
	out := r.DisplayPrefix + "[" + strings.Join(parts, " / ") + "]"
	if r.Remaining > 0 {
		out += fmt.Sprintf(" STILL X%d", r.Remaining)
	}
	return out
}

// Demand is a declared quantity to list on one platform in one sector.
type Demand struct {
	Platform Platform `json:"platform"`
	Sector   string   `json:"sector"`
	Quantity int      `json:"quantity"`
}

// Shortfall reports a sector whose declared demand exceeds its stock.
type Shortfall struct {
	Sector    string `json:"sector"`
	Demanded  int    `json:"demanded"`
	Available int    `json:"available"`
}

// Delta is how many tickets are missing to cover the demand.
func (s Shortfall) Delta() int { return s.Demanded - s.Available }

// MarshalJSON adds the delta to the encoded shortfall.
func (s Shortfall) MarshalJSON() ([]byte, error) {
	type plain Shortfall
	return json.Marshal(struct {
		plain
		Delta int `json:"delta"`
	}{plain(s), s.Delta()})
}

func (s Shortfall) String() string {
	return fmt.Sprintf("Sector %s: %d listed vs %d available", s.Sector, s.Demanded, s.Available)
}

// MissingStock flags a row that was not fully listed.  Full is set when
// the row received no allocation at all.
type MissingStock struct {
	Sector   string `json:"sector"`
	Row      string `json:"row"`
	Quantity int    `json:"quantity"`
	Full     bool   `json:"full"`
}

func (m MissingStock) String() string {
	if m.Full {
		return fmt.Sprintf("Sector %s: 100%% Missing (X%d)", m.Sector, m.Quantity)
	}
	return fmt.Sprintf("Sector %s: Missing X%d", m.Sector, m.Quantity)
}

// AllocationResult is the outcome of a successful allocation run.  Rows
// keep their input order.
type AllocationResult struct {
	Rows    []CapacityRow  `json:"rows"`
	Missing []MissingStock `json:"missing"`
	Listed  int            `json:"listed"`
}
