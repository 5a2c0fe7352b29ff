package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event() ReconciliationCompletedEvent {
	return ReconciliationCompletedEvent{
		RunID:        "8c3e",
		EventName:    "Inter - Milan",
		VenueContext: "inter",
		Operator:     "ops",
		GrandTotal:   12,
		NetStock:     7,
		Pending:      5,
		Delivered:    2,
		TotalSold:    5,
		CompletedAt:  "2026-03-01T18:30:00Z",
	}
}

func TestFormatLine(t *testing.T) {
	ev := event()
	assert.Equal(t,
		`[2026-03-01T18:30:00Z] Reconciliation completed | run_id=8c3e | event="Inter - Milan" | context="inter" | operator="ops" | tickets=12 | stock=7 | pending=5 | delivered=2 | sold=5`,
		FormatLine(ev))

	ev.Warnings = []string{"w1", "w2"}
	ev.Shortfalls = []string{"Sector A: 12 listed vs 10 available"}
	assert.True(t, strings.HasSuffix(FormatLine(ev), " | warnings=2 | shortfalls=[Sector A: 12 listed vs 10 available]"))
}

func TestHandleAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	rc := &ReportConsumer{LogDir: dir}

	body, err := json.Marshal(event())
	require.NoError(t, err)
	require.NoError(t, rc.Handle(body))
	require.NoError(t, rc.Handle(body))

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "run_id=8c3e")
}

func TestHandleRejectsBadMessages(t *testing.T) {
	rc := &ReportConsumer{LogDir: t.TempDir()}
	assert.Error(t, rc.Handle([]byte("{not json")))
	assert.Error(t, rc.Handle([]byte(`{"event_name":"x"}`)))
}
