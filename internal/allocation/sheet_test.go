package allocation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

const sheetText = `⚽ EVENT: Inter - Milan
🥅 GRAND TOTAL: 7
💺Row: 9 Seat: 1 Qty: 1 [N/A]

📂 Tribuna
🎫 Sector: ROSSO Total: 5 | 3+2
💺Row: 4 Seat: 10/12 Qty: 3 [45.00€]
💺Row: 5 Seat: 1/2 Qty: 2 [45.00€]
🎫 Sector: blu Total: 2 | 2
💺Row: 1 Seat: 7/8 Qty: 2 [N/A]
`

func TestParseStockSheet(t *testing.T) {
	s := ParseStockSheet(sheetText, nil)

	require.Len(t, s.Rows, 3)
	assert.Equal(t, model.CapacityRow{
		Sector:        "ROSSO",
		TotalQuantity: 3,
		Remaining:     3,
		DisplayPrefix: "💺Row: 4 Seat: 10/12 Qty: 3 ",
		Line:          "💺Row: 4 Seat: 10/12 Qty: 3 [45.00€]",
	}, s.Rows[0])
	assert.Equal(t, "BLU", s.Rows[2].Sector)
	assert.Equal(t, map[string]int{"ROSSO": 5, "BLU": 2}, s.SeatsBySector())
	assert.Len(t, s.Lines, 10)
}

func TestParseStockSheetEmpty(t *testing.T) {
	s := ParseStockSheet("  \n", nil)
	assert.Empty(t, s.Rows)
	assert.Empty(t, s.Annotate(nil))
}

func TestRenderAllocatedSheet(t *testing.T) {
	s := ParseStockSheet(sheetText, nil)
	demands := ExplodeDemands([]DemandRow{
		{Sector: "rosso", Cells: map[model.Platform]string{model.PlatformGogo: "3", model.PlatformNet: "1"}},
	}, nil)

	res, err := Allocate(s.Capacity(), demands)
	require.NoError(t, err)

	got := Render(s, res)
	want := strings.Join([]string{
		"⚽ EVENT: Inter - Milan",
		"🥅 GRAND TOTAL: 7",
		"💺Row: 9 Seat: 1 Qty: 1 [N/A]",
		"",
		"📂 Tribuna",
		"🎫 Sector: ROSSO Total: 5 | 3+2",
		"💺Row: 4 Seat: 10/12 Qty: 3 [X3 Gogo]",
		"💺Row: 5 Seat: 1/2 Qty: 2 [X1 Net] STILL X1",
		"🎫 Sector: blu Total: 2 | 2",
		"💺Row: 1 Seat: 7/8 Qty: 2 [N/A]",
		"",
		"",
		"⚠️ WARNING: MISSING ITEMS - YOU HAVE NOT LISTED EVERYTHING:",
		"Sector ROSSO: Missing X1",
		"Sector BLU: 100% Missing (X2)",
	}, "\n")
	assert.Equal(t, want, got)
	assert.Equal(t, 3, s.Rows[0].Remaining)
}

func TestShortfallLines(t *testing.T) {
	lines := ShortfallLines([]model.Shortfall{{Sector: "A", Demanded: 12, Available: 10}})
	assert.Equal(t, []string{
		"⚠️ STOP! INSUFFICIENT STOCK - PLEASE FIX:",
		"",
		"Sector A: 12 listed vs 10 available",
	}, lines)
}
