package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-stock-reconciler/internal/utils"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func eventDir(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "Inter - Milan")
	writeFile(t, filepath.Join(root, "- Tickets -", "Rosso", "ROSSO-4-10.pdf"), "")
	writeFile(t, filepath.Join(root, "- Tickets -", "Rosso", "ROSSO-4-11.pdf"), "")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Rosso 626946288 x1"), 0o755))
	return root
}

func TestScanCmd(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, scanCmd([]string{eventDir(t)}, nil, &out))
	assert.Contains(t, out.String(), "⚽ EVENT: Inter - Milan")
	assert.Contains(t, out.String(), "🥅 GRAND TOTAL: 2")
}

func TestScanCmdJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, scanCmd([]string{"--json", eventDir(t)}, nil, &out))
	assert.Contains(t, out.String(), `"grand_total": 2`)
}

func TestScanCmdNeedsDirectory(t *testing.T) {
	err := scanCmd(nil, nil, &bytes.Buffer{})
	assert.EqualError(t, err, "scan: expected one event directory")
}

func TestReconcileCmd(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, reconcileCmd([]string{eventDir(t)}, nil, &out))
	assert.Contains(t, out.String(), "**Event: Inter - Milan**")
}

const stockReport = `⚽ EVENT: Inter - Milan
🥅 GRAND TOTAL: 2
📂 Rosso
🎫 Sector: ROSSO Total: 2 | 2
💺Row: 4 Seat: 10/11 Qty: 2 [N/A]
`

func TestAllocateCmd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "stock.txt"), stockReport)
	writeFile(t, filepath.Join(dir, "demand.yaml"), "rows:\n  - sector: rosso\n    platforms: {gogo: 2}\n")

	var out bytes.Buffer
	err := allocateCmd([]string{"--stock", filepath.Join(dir, "stock.txt"), "--demand", filepath.Join(dir, "demand.yaml")}, nil, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "💺Row: 4 Seat: 10/11 Qty: 2 [X2 Gogo]")
	assert.NotContains(t, out.String(), "MISSING")
}

func TestAllocateCmdShortfall(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "stock.txt"), stockReport)
	writeFile(t, filepath.Join(dir, "demand.json"), `{"rows": [{"sector": "rosso", "platforms": {"net": "2+1"}}]}`)

	var out bytes.Buffer
	err := allocateCmd([]string{"--stock", filepath.Join(dir, "stock.txt"), "--demand", filepath.Join(dir, "demand.json")}, nil, &out)
	assert.True(t, errors.Is(err, errShortfall))
	assert.Contains(t, out.String(), "Sector ROSSO: 3 listed vs 2 available")
}

func TestAllocateCmdRequiresFiles(t *testing.T) {
	assert.Error(t, allocateCmd([]string{"--stock", "x"}, nil, &bytes.Buffer{}))
}

func TestResolveCmd(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, resolveCmd([]string{"--event", "Inter - Juventus", "171"}, nil, &out))
	assert.Equal(t, "PRIMO ROSSO\n", out.String())
}

func TestResolveCmdVenueDB(t *testing.T) {
	db := filepath.Join(t.TempDir(), "venues.jsonc")
	writeFile(t, db, `{
  // Olimpico
  "roma": {"Sector 7 Legacy": ["blk 7"],},
}`)
	var out bytes.Buffer
	require.NoError(t, resolveCmd([]string{"--venue-db", db, "--context", "roma", "BLK 7"}, nil, &out))
	assert.Equal(t, "SECTOR 7 LEGACY\n", out.String())
}

func TestClassifyCmd(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, classifyCmd([]string{"Rosso 626946288 x2 BOUGHT"}, nil, &out))
	s := out.String()
	assert.Contains(t, s, "platform: Gogo\n")
	assert.Contains(t, s, "status:   (Bought)\n")
	assert.Contains(t, s, "quantity: 2\n")
}

func TestHashPasswordCmd(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, hashPasswordCmd([]string{"--cost", "4"}, strings.NewReader("s3cret\n"), &out))
	hash := strings.TrimSpace(out.String())
	assert.True(t, utils.VerifyPassword(hash, "s3cret"))

	assert.Error(t, hashPasswordCmd(nil, strings.NewReader(""), &bytes.Buffer{}))
}

func TestReportEvent(t *testing.T) {
	assert.Equal(t, "Inter - Milan", reportEvent(stockReport))
	assert.Empty(t, reportEvent("no header"))
}
