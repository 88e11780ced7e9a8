package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runger/flowbridge/internal/histstore"
)

func TestHistoryTable(t *testing.T) {
	runs := []histstore.Run{
		{RunID: "run-aaa", Status: "succeeded", StartedAt: "2025-11-02T10:00:00Z", DurationMs: 1500},
		{RunID: "run-bbb", Status: "failed", StartedAt: "2025-11-01T10:00:00Z", DurationMs: 80},
	}

	out := HistoryTable(runs, 0)
	assert.Contains(t, out, "RUN ID")
	assert.Contains(t, out, "run-aaa")
	assert.Contains(t, out, "succeeded")
	assert.Contains(t, out, "run-bbb")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "80ms")

	// One header plus one line per run.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
}

func TestHistoryTableEmpty(t *testing.T) {
	out := HistoryTable(nil, 0)
	assert.Contains(t, out, "no execution history")
}

func TestHistoryTableTruncatesIDs(t *testing.T) {
	runs := []histstore.Run{
		{RunID: strings.Repeat("x", 64), Status: "succeeded"},
	}
	out := HistoryTable(runs, 16)
	assert.NotContains(t, out, strings.Repeat("x", 64))
	assert.Contains(t, out, "…")
}

func TestPrettyJSON(t *testing.T) {
	out := PrettyJSON(json.RawMessage(`{"a":1,"b":[2,3]}`))
	assert.Contains(t, out, "\n  \"a\": 1")
}

func TestPrettyJSONInvalidFallsBack(t *testing.T) {
	out := PrettyJSON(json.RawMessage("not-json"))
	assert.Equal(t, "not-json", out)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "-", formatDuration(0))
	assert.Equal(t, "250ms", formatDuration(250))
	assert.Equal(t, "2s", formatDuration(2000))
}
