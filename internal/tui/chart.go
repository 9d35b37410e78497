package tui

import (
	"fmt"
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/chart"

	"github.com/mum4k/termdash/cell"
	"github.com/mum4k/termdash/container"
	"github.com/mum4k/termdash/widgets/linechart"
)

// LineSeries is one run laid out on the index based x-axis of a termdash
// line chart. Values outside the run are NaN so each run draws on its own.
type LineSeries struct {
	Label  string
	Values []float64
	Color  cell.Color
}

// BuildLineSeries converts a plan into line chart series, keeping the plan
// order in the labels since termdash draws series sorted by label.
func BuildLineSeries(p *chart.Plan) []LineSeries {
	out := make([]LineSeries, 0, len(p.Series))
	for i, s := range p.Series {
		values := nanSeries(p.Samples)
		for j, pt := range s.Points() {
			if k := s.Start + j; k < len(values) {
				values[k] = pt.Y
			}
		}
		out = append(out, LineSeries{
			Label:  fmt.Sprintf("%03d-%s", i, s.Mode),
			Values: values,
			Color:  CellColor(s.Color),
		})
	}
	return out
}

// BuildXLabels returns "15:04" labels for every sample index.
func BuildXLabels(p *chart.Plan) map[int]string {
	labels := make(map[int]string, p.Samples)
	for _, s := range p.Series {
		for j, pt := range s.Points() {
			labels[s.Start+j] = p.FormatX(pt.X)
		}
	}
	return labels
}

func nanSeries(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = math.NaN()
	}
	return v
}

// CellColor maps an RGB color onto a 24-bit terminal color.
func CellColor(c color.RGBA) cell.Color {
	return cell.ColorRGB24(int(c.R), int(c.G), int(c.B))
}

// Renderer draws plans into a termdash line chart.
type Renderer struct {
	Chart     *linechart.LineChart
	Container *container.Container

	mu     sync.Mutex
	labels map[string]bool
}

// Render replaces every series on the chart with the runs of p.
func (r *Renderer) Render(p *chart.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	series := BuildLineSeries(p)
	xLabels := BuildXLabels(p)

	current := make(map[string]bool, len(series))
	for _, s := range series {
		current[s.Label] = true
		if err := r.Chart.Series(s.Label, s.Values,
			linechart.SeriesCellOpts(cell.FgColor(s.Color)),
			linechart.SeriesXLabels(xLabels),
		); err != nil {
			return fmt.Errorf("setting series %s: %v", s.Label, err)
		}
	}
	// blank out runs from the previous refresh that no longer exist
	for label := range r.labels {
		if current[label] {
			continue
		}
		if err := r.Chart.Series(label, nanSeries(p.Samples)); err != nil {
			return fmt.Errorf("clearing series %s: %v", label, err)
		}
	}
	r.labels = current

	if r.Container != nil {
		UpdateChartTitle(r.Container, p)
	}
	return nil
}

// UpdateChartTitle shows the plan title and the span it covers.
func UpdateChartTitle(c *container.Container, p *chart.Plan) {
	span := FormatDurationAuto(p.X.End.Sub(p.X.Start).Round(time.Minute))
	title := fmt.Sprintf("%s [%s] - q: quit, r: refresh", p.Title, span)
	_ = c.Update(chartContainerID, container.BorderTitle(title))
}
