package tui

import (
	"github.com/Prajwal-Prathiksh/battery-plot/internal/chart"

	"github.com/mum4k/termdash/cell"
	"github.com/mum4k/termdash/container"
	"github.com/mum4k/termdash/keyboard"
	"github.com/mum4k/termdash/linestyle"
	"github.com/mum4k/termdash/terminal/terminalapi"
	"github.com/mum4k/termdash/widgets/linechart"
	"github.com/mum4k/termdash/widgets/text"
)

const chartContainerID = "chart-container"

// CreateChartWidget creates the line chart with the axis scale and y labels
// of the first plan.
func CreateChartWidget(p *chart.Plan) (*linechart.LineChart, error) {
	fg := cell.FgColor(CellColor(p.Palette.Text))
	opts := []linechart.Option{
		linechart.AxesCellOpts(fg),
		linechart.YLabelCellOpts(fg),
		linechart.XLabelCellOpts(fg),
		linechart.YAxisFormattedValues(p.FormatY),
	}
	if p.Y.Max > p.Y.Min {
		opts = append(opts, linechart.YAxisCustomScale(p.Y.Min, p.Y.Max))
	}
	return linechart.New(opts...)
}

// CreateTextWidget creates and configures the text display widget
func CreateTextWidget() (*text.Text, error) {
	return text.New(text.WrapAtWords())
}

// CreateUILayout creates the TUI container layout with all widgets
func CreateUILayout(t terminalapi.Terminal, title string, chartWidget *linechart.LineChart, textWidget *text.Text) (*container.Container, error) {
	return container.New(
		t,
		container.Border(linestyle.Light),
		container.BorderTitle("Battery Plot - Tab/Shift+Tab: focus, q: quit, r: refresh"),
		container.KeyFocusNext(keyboard.KeyTab),
		container.KeyFocusPrevious(keyboard.KeyBacktab),
		container.SplitHorizontal(
			container.Top(
				container.ID(chartContainerID),
				container.Border(linestyle.Light),
				container.BorderTitle(title),
				container.PlaceWidget(chartWidget),
			),
			container.Bottom(
				container.Border(linestyle.Light),
				container.BorderTitle("Runs & Summary - ↑↓ to scroll"),
				container.PlaceWidget(textWidget),
			),
			container.SplitPercent(70),
		),
	)
}
