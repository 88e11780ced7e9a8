// Package render formats operation results for the terminal.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/runger/flowbridge/internal/histstore"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)

	statusStyles = map[string]lipgloss.Style{
		"succeeded": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"failed":    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"running":   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
)

// colorEnabled reports whether the terminal supports color at all.
func colorEnabled() bool {
	return termenv.EnvColorProfile() != termenv.Ascii
}

// HistoryTable renders execution-history rows as an aligned table. width
// bounds the run-id column; 0 means no truncation.
func HistoryTable(runs []histstore.Run, width int) string {
	if len(runs) == 0 {
		return dimStyle.Render("no execution history") + "\n"
	}

	idWidth := len("RUN ID")
	for _, r := range runs {
		if w := runewidth.StringWidth(r.RunID); w > idWidth {
			idWidth = w
		}
	}
	if width > 0 && idWidth > width {
		idWidth = width
	}

	var b strings.Builder
	header := fmt.Sprintf("%s  %-10s  %-20s  %s",
		runewidth.FillRight("RUN ID", idWidth), "STATUS", "STARTED", "DURATION")
	b.WriteString(headerStyle.Render(header))
	b.WriteByte('\n')

	for _, r := range runs {
		id := r.RunID
		if width > 0 {
			id = runewidth.Truncate(id, idWidth, "…")
		}
		status := r.Status
		if style, ok := statusStyles[status]; ok && colorEnabled() {
			status = style.Render(runewidth.FillRight(r.Status, 10))
		} else {
			status = runewidth.FillRight(status, 10)
		}
		fmt.Fprintf(&b, "%s  %s  %-20s  %s\n",
			runewidth.FillRight(id, idWidth),
			status,
			r.StartedAt,
			formatDuration(r.DurationMs),
		)
	}
	return b.String()
}

// PrettyJSON re-indents a raw JSON value for display.
func PrettyJSON(raw json.RawMessage) string {
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return string(raw)
	}
	return out.String()
}

func formatDuration(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Second {
		return fmt.Sprintf("%dms", ms)
	}
	return d.Round(100 * time.Millisecond).String()
}
