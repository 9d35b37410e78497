package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/history"

	"github.com/mum4k/termdash/cell"
	"github.com/mum4k/termdash/widgets/text"
)

// LineSpec holds formatting information for status text display
type LineSpec struct {
	Text     string
	Color    cell.Color
	UseColor bool
}

// BuildStatusLines centralizes ALL string construction & styling.
func BuildStatusLines(info StatusInfo) []LineSpec {
	var lines []LineSpec

	appendLine := func(txt string, color cell.Color, useColor bool) {
		txt = strings.TrimRight(txt, " ")
		lines = append(lines, LineSpec{Text: txt, Color: color, UseColor: useColor})
	}

	modeColor := info.DischargingColor
	if info.Latest.Mode == history.Charging {
		modeColor = info.ChargingColor
	}
	appendLine(fmt.Sprintf("%s: %s (%s)", info.Title, info.LatestValue, info.Latest.Mode), modeColor, true)
	appendLine(fmt.Sprintf("--    %s since %s for %s (%d samples, start: %s)",
		capitalize(info.Latest.Mode.String()), info.RunStart.Format("Jan 2 15:04"),
		FormatDurationAuto(info.Latest.T.Sub(info.RunStart).Round(time.Minute)),
		info.RunSamples, info.RunStartValue), 0, false)

	appendLine("", 0, false)

	appendLine("Data Summary:", 0, false)
	appendLine(fmt.Sprintf("--    Total samples: %d (spanning %s)", info.TotalSamples, FormatDurationAuto(info.TimeRange.Round(time.Minute))), 0, false)
	appendLine(fmt.Sprintf("--    Charging: %d samples in %d runs", info.ChargingSamples, info.ChargingRuns), info.ChargingColor, true)
	appendLine(fmt.Sprintf("--    Discharging: %d samples in %d runs", info.DischargingSamples, info.DischargingRuns), info.DischargingColor, true)
	appendLine(fmt.Sprintf("--    Time range: %s to %s", info.StartTime, info.EndTime), 0, false)

	appendLine("", 0, false)

	appendLine(fmt.Sprintf("Data file: %s", info.DataFile), 0, false)
	appendLine(info.ConfigStr, 0, false)

	return lines
}

// UpdateStatusText writes formatted status information to the text widget
func UpdateStatusText(textWidget *text.Text, info StatusInfo) {
	textWidget.Reset()
	for _, ln := range BuildStatusLines(info) {
		if ln.UseColor {
			textWidget.Write(ln.Text+"\n", text.WriteCellOpts(cell.FgColor(ln.Color)))
		} else {
			textWidget.Write(ln.Text + "\n")
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
