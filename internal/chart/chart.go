// Package chart turns segmented battery history into a drawable plan and
// hands it to a rendering backend.
package chart

import (
	"fmt"
	"image/color"
	"time"

	"github.com/samber/lo"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/history"
	"github.com/Prajwal-Prathiksh/battery-plot/internal/segment"
)

// TimeLayout is used for x-axis tick labels.
const TimeLayout = "15:04"

// Renderer draws a finished plan.
type Renderer interface {
	Render(p *Plan) error
}

// Config is the per-invocation display configuration.
type Config struct {
	Title   string
	YMax    YMax
	YLabels LabelStyle
	Colors  ColorPolicy
	Palette Palette
}

// TimeRange is the x-axis extent.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// ValueRange is the y-axis extent.
type ValueRange struct {
	Min float64
	Max float64
}

// Options are the resolved axis settings of one chart.
type Options struct {
	Title   string
	X       TimeRange
	Y       ValueRange
	YLabels LabelStyle
}

// Point is one vertex of a series.
type Point struct {
	X time.Time
	Y float64
}

// Series is one run ready to stroke. Start is the index of its first
// record in the assembled sequence.
type Series struct {
	Mode    history.Mode
	Color   color.RGBA
	Start   int
	Records []history.Record
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Records) }

// Times returns the x values.
func (s Series) Times() []time.Time {
	return lo.Map(s.Records, func(r history.Record, _ int) time.Time { return r.T })
}

// Values returns the y values.
func (s Series) Values() []float64 {
	return lo.Map(s.Records, func(r history.Record, _ int) float64 { return r.Value })
}

// Points returns the (x, y) pairs in order.
func (s Series) Points() []Point {
	return lo.Map(s.Records, func(r history.Record, _ int) Point { return Point{X: r.T, Y: r.Value} })
}

// Plan is everything a Renderer needs.
type Plan struct {
	Options
	Palette Palette
	Series  []Series
	// Samples is the length of the assembled record sequence.
	Samples int
}

// FormatX renders an x tick label.
func (p *Plan) FormatX(t time.Time) string { return t.Format(TimeLayout) }

// FormatY renders a y tick label.
func (p *Plan) FormatY(v float64) string { return p.YLabels.Format(v) }

// Resolve builds the axis options from time ordered records.
func Resolve(records []history.Record, cfg Config) (Options, error) {
	if len(records) == 0 {
		return Options{}, segment.ErrEmpty
	}
	return Options{
		Title: cfg.Title,
		X: TimeRange{
			Start: records[0].T,
			End:   records[len(records)-1].T,
		},
		Y:       ValueRange{Min: 0, Max: cfg.YMax.Resolve(records)},
		YLabels: cfg.YLabels,
	}, nil
}

// Assemble segments records and lays out one series per run: every
// discharging run first, then every charging run, each in time order.
func Assemble(records []history.Record, cfg Config) (*Plan, error) {
	opts, err := Resolve(records, cfg)
	if err != nil {
		return nil, err
	}
	runs, err := segment.Segment(records)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Options: opts,
		Palette: cfg.Palette,
		Series:  make([]Series, 0, runs.Len()),
		Samples: len(records),
	}
	for _, m := range []history.Mode{history.Discharging, history.Charging} {
		for _, run := range runs.Of(m) {
			plan.Series = append(plan.Series, Series{
				Mode:    m,
				Color:   cfg.Colors.Color(m),
				Start:   run.Start,
				Records: run.Records,
			})
		}
	}
	return plan, nil
}

// Draw assembles records and renders them with r. Render failures are
// wrapped and returned; nothing is retried.
func Draw(records []history.Record, cfg Config, r Renderer) error {
	plan, err := Assemble(records, cfg)
	if err != nil {
		return err
	}
	if err := r.Render(plan); err != nil {
		return fmt.Errorf("chart: render: %w", err)
	}
	return nil
}
