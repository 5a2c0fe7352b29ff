package allocation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-stock-reconciler/internal/model"
)

func TestExplodeDemands(t *testing.T) {
	rows := []DemandRow{
		{Sector: "rosso", Cells: map[model.Platform]string{model.PlatformTixstock: "1", model.PlatformGogo: "4+2"}},
		{Sector: "  ", Cells: map[model.Platform]string{model.PlatformGogo: "9"}},
		{Sector: "blu", Cells: map[model.Platform]string{model.PlatformGogo: "3, 0", model.PlatformNet: "x5"}},
	}
	got := ExplodeDemands(rows, nil)
	assert.Equal(t, []model.Demand{
		{Platform: model.PlatformGogo, Sector: "ROSSO", Quantity: 4},
		{Platform: model.PlatformGogo, Sector: "ROSSO", Quantity: 2},
		{Platform: model.PlatformGogo, Sector: "BLU", Quantity: 3},
		{Platform: model.PlatformNet, Sector: "BLU", Quantity: 5},
		{Platform: model.PlatformTixstock, Sector: "ROSSO", Quantity: 1},
	}, got)
}

func TestExplodeDemandsCanonicalizes(t *testing.T) {
	canon := func(s string) string { return "SECTOR-" + strings.ToLower(s) }
	got := ExplodeDemands([]DemandRow{{Sector: "A", Cells: map[model.Platform]string{model.PlatformOther: "2"}}}, canon)
	assert.Equal(t, []model.Demand{{Platform: model.PlatformOther, Sector: "SECTOR-a", Quantity: 2}}, got)
}

func TestParseDemandSheet(t *testing.T) {
	yamlSheet := `
rows:
  - sector: Rosso
    platforms:
      gogo: "4+2"
      net: 3
  - sector: Blu
    platforms:
      TIX: "1"
`
	jsonSheet := `{
  // exported from the listing table
  "rows": [
    {"sector": "Rosso", "platforms": {"Viagogo": "4+2", "net": 3}},
    {"sector": "Blu", "platforms": {"tixstock": "1"}},
  ]
}`
	want := []DemandRow{
		{Sector: "Rosso", Cells: map[model.Platform]string{model.PlatformGogo: "4+2", model.PlatformNet: "3"}},
		{Sector: "Blu", Cells: map[model.Platform]string{model.PlatformTixstock: "1"}},
	}

	got, err := ParseDemandSheet([]byte(yamlSheet), "yaml")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseDemandSheet([]byte(jsonSheet), ".jsonc")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseDemandSheetMergesAliases(t *testing.T) {
	got, err := ParseDemandSheet([]byte(`{"rows":[{"sector":"A","platforms":{"tix":"1","tixstock":"2"}}]}`), "json")
	require.NoError(t, err)
	assert.Equal(t, "1+2", got[0].Cells[model.PlatformTixstock])
}

func TestParseDemandSheetErrors(t *testing.T) {
	_, err := ParseDemandSheet([]byte(`{"rows":[{"sector":"A","platforms":{"ebay":"1"}}]}`), "json")
	assert.ErrorIs(t, err, ErrUnknownPlatform)

	_, err = ParseDemandSheet([]byte("rows:\n  - sector: A\n    platforms:\n      gogo: [1, 2]\n"), "yml")
	assert.Error(t, err)

	_, err = ParseDemandSheet([]byte(`{"rows":[{"sector":"A","platforms":{"gogo":true}}]}`), "json")
	assert.Error(t, err)
}

func TestLoadDemandSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rows:\n  - sector: A\n    platforms: {gogo: 2}\n"), 0o644))

	rows, err := LoadDemandSheet(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0].Cells[model.PlatformGogo])

	_, err = LoadDemandSheet(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
