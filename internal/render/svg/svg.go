// Package svg renders chart plans to SVG or PNG files with go-chart.
package svg

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/chart"
)

// Format is the output image encoding.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 768
)

// ErrFormat is returned for an unknown output format.
var ErrFormat = errors.New("unsupported image format")

// Renderer writes one image file per Render call. The file is replaced
// atomically, so a failed render never leaves a partial image behind.
type Renderer struct {
	Path   string
	Width  int
	Height int
	// Format defaults to the Path extension, then SVG.
	Format Format
}

// Render draws p and writes it to r.Path.
func (r *Renderer) Render(p *chart.Plan) error {
	provider, err := r.provider()
	if err != nil {
		return err
	}
	ch := r.build(p)

	if err := os.MkdirAll(filepath.Dir(r.Path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.Path), "."+filepath.Base(r.Path)+".*.tmp")
	if err != nil {
		return err
	}
	// no-ops once the rename succeeded
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	bw := bufio.NewWriter(tmp)
	if err := ch.Render(provider, bw); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.Path)
}

func (r *Renderer) format() Format {
	if r.Format != "" {
		return Format(strings.ToLower(string(r.Format)))
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(r.Path)), "."); ext != "" {
		return Format(ext)
	}
	return SVG
}

func (r *Renderer) provider() (gochart.RendererProvider, error) {
	switch f := r.format(); f {
	case SVG:
		return gochart.SVG, nil
	case PNG:
		return gochart.PNG, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, f)
	}
}

func (r *Renderer) size() (int, int) {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// build maps a plan onto a go-chart chart.
func (r *Renderer) build(p *chart.Plan) gochart.Chart {
	w, h := r.size()
	bg := toDrawing(p.Palette.Background)
	fg := toDrawing(p.Palette.Text)
	axis := gochart.Style{
		StrokeColor: fg,
		StrokeWidth: 1,
		FontColor:   fg,
		FontSize:    float64(h) * 0.025 * 0.75,
	}

	loc := p.X.Start.Location()
	xMin, xMax := xBounds(p.X)
	yMin, yMax := yBounds(p.Y)

	series := make([]gochart.Series, 0, len(p.Series))
	for i, s := range p.Series {
		series = append(series, gochart.TimeSeries{
			Name: fmt.Sprintf("%s-%d", s.Mode, i),
			Style: gochart.Style{
				StrokeColor: toDrawing(s.Color),
				StrokeWidth: 2,
			},
			XValues: s.Times(),
			YValues: s.Values(),
		})
	}

	return gochart.Chart{
		Title: p.Title,
		TitleStyle: gochart.Style{
			FontColor: fg,
			FontSize:  float64(h) * 0.05 * 0.75,
		},
		Width:  w,
		Height: h,
		Background: gochart.Style{
			FillColor: bg,
			Padding: gochart.Box{
				Top:    h * 8 / 100,
				Left:   w * 2 / 100,
				Right:  w * 8 / 100,
				Bottom: h * 2 / 100,
			},
		},
		Canvas: gochart.Style{FillColor: bg},
		XAxis: gochart.XAxis{
			Style: axis,
			Range: &gochart.ContinuousRange{Min: xMin, Max: xMax},
			ValueFormatter: func(v interface{}) string {
				switch t := v.(type) {
				case time.Time:
					return p.FormatX(t.In(loc))
				case float64:
					return p.FormatX(gochart.TimeFromFloat64(t).In(loc))
				}
				return ""
			},
		},
		YAxis: gochart.YAxis{
			Style: axis,
			Range: &gochart.ContinuousRange{Min: yMin, Max: yMax},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return p.FormatY(f)
				}
				return ""
			},
		},
		// the unused secondary axis would otherwise draw with an empty range
		YAxisSecondary: gochart.YAxis{Style: gochart.Style{Hidden: true}},
		Series:         series,
	}
}

// xBounds widens a single-instant range so the axis has a non-zero span.
func xBounds(x chart.TimeRange) (float64, float64) {
	end := x.End
	if !end.After(x.Start) {
		end = x.Start.Add(time.Minute)
	}
	return gochart.TimeToFloat64(x.Start), gochart.TimeToFloat64(end)
}

func yBounds(y chart.ValueRange) (float64, float64) {
	if y.Max <= y.Min {
		return y.Min, y.Min + 1
	}
	return y.Min, y.Max
}

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
