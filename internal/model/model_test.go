package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformText(t *testing.T) {
	b, err := json.Marshal(map[string]Platform{"p": PlatformTixstock, "o": PlatformOther})
	require.NoError(t, err)
	assert.JSONEq(t, `{"p":"Tixstock","o":"Private/Other"}`, string(b))

	var back map[string]Platform
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, PlatformTixstock, back["p"])
	assert.Equal(t, PlatformOther, back["o"])

	var p Platform
	assert.Error(t, p.UnmarshalText([]byte("ebay")))
}

func TestParsePlatformAliases(t *testing.T) {
	for name, want := range map[string]Platform{
		"viagogo":       PlatformGogo,
		" Tix ":         PlatformTixstock,
		"Sports Events": PlatformSportsEvents,
		"private/other": PlatformOther,
	} {
		got, ok := ParsePlatform(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok := ParsePlatform("gogo tickets")
	assert.False(t, ok)
}

func TestOrderStatusText(t *testing.T) {
	assert.Equal(t, "(empty folder)", StatusUnmarked.Label())
	assert.Equal(t, "(Bought with names)", StatusBoughtWithNames.Label())

	var s OrderStatus
	require.NoError(t, s.UnmarshalText([]byte("bought need info")))
	assert.Equal(t, StatusBoughtNeedInfo, s)
	assert.Error(t, s.UnmarshalText([]byte("sold")))
}

func TestCapacityRowAnnotated(t *testing.T) {
	r := CapacityRow{
		Sector:        "ROSSO",
		TotalQuantity: 4,
		Remaining:     4,
		DisplayPrefix: "💺Row: 4 Seat: 1/4 Qty: 4 ",
		Line:          "💺Row: 4 Seat: 1/4 Qty: 4 [N/A]",
	}
	assert.Equal(t, r.Line, r.Annotated())

	r.Allocations = []AllocationTag{{PlatformGogo, 2}, {PlatformNet, 1}}
	r.Remaining = 1
	assert.Equal(t, 3, r.Allocated())
	assert.Equal(t, "💺Row: 4 Seat: 1/4 Qty: 4 [X2 Gogo / X1 Net] STILL X1", r.Annotated())

	r.Allocations = append(r.Allocations, AllocationTag{PlatformStubHub, 1})
	r.Remaining = 0
	assert.Equal(t, "💺Row: 4 Seat: 1/4 Qty: 4 [X2 Gogo / X1 Net / X1 StubHub]", r.Annotated())
}

func TestShortfallAndMissing(t *testing.T) {
	s := Shortfall{Sector: "A", Demanded: 12, Available: 10}
	assert.Equal(t, 2, s.Delta())
	assert.Equal(t, "Sector A: 12 listed vs 10 available", s.String())
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sector":"A","demanded":12,"available":10,"delta":2}`, string(b))

	var back Shortfall
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, s, back)

	m, err := json.Marshal(MissingStock{Sector: "B", Row: "💺Row: 4 Seat: 1/2 Qty: 2", Quantity: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sector":"B","row":"💺Row: 4 Seat: 1/2 Qty: 2","quantity":1,"full":false}`, string(m))

	assert.Equal(t, "Sector B: 100% Missing (X3)", MissingStock{Sector: "B", Quantity: 3, Full: true}.String())
	assert.Equal(t, "Sector B: Missing X1", MissingStock{Sector: "B", Quantity: 1}.String())
}

func TestSeatGroupRange(t *testing.T) {
	assert.Equal(t, "7", SeatGroup{Quantity: 1, FirstRaw: "7", LastRaw: "7"}.Range())
	assert.Equal(t, "7/9", SeatGroup{Quantity: 2, FirstRaw: "7", LastRaw: "9"}.Range())
	assert.Equal(t, StepOddEven, StepFor(true))
	assert.Equal(t, StepSequential, StepFor(false))
}

func TestCategoryOrdering(t *testing.T) {
	c := CategoryBlock{Sectors: map[string]map[string][]SeatGroup{
		"B": {"10": {{Quantity: 2}}, "9": {{Quantity: 1}}, "A": {{Quantity: 1}}},
		"A": {"1": {{Quantity: 3}}},
	}}
	assert.Equal(t, []string{"A", "B"}, c.SectorNames())
	assert.Equal(t, []string{"9", "10", "A"}, c.RowLabels("B"))
	assert.Equal(t, 7, c.SeatCount())
}

func TestReportTotals(t *testing.T) {
	r := &ReconciliationReport{Platforms: []PlatformSummary{{Total: 3}, {Total: 2}}}
	assert.Equal(t, 5, r.TotalSold())
	assert.Equal(t, 4, Total([]SectorCount{{Quantity: 5}, {Quantity: -1}}))
}
