package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/samber/lo"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/history"
)

// LabelStyle selects how y-axis tick values are printed.
type LabelStyle int

const (
	// Raw prints the value as is.
	Raw LabelStyle = iota
	// DurationHoursMinutes reads the value as seconds and prints H:MM.
	DurationHoursMinutes
)

// Format renders one tick value.
func (s LabelStyle) Format(v float64) string {
	switch s {
	case DurationHoursMinutes:
		return hoursMinutes(v)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

func (s LabelStyle) String() string {
	if s == DurationHoursMinutes {
		return "hours"
	}
	return "raw"
}

// hoursMinutes truncates, it never rounds: 5425s is 1:30, 59s is 0:00.
func hoursMinutes(secs float64) string {
	if math.IsNaN(secs) || secs < 0 {
		secs = 0
	}
	hours := int64(secs / 3600)
	mins := int64(secs/60) % 60
	return fmt.Sprintf("%d:%02d", hours, mins)
}

// YMax resolves the upper bound of the y-axis. The zero value is
// ObservedMax.
type YMax struct {
	constant bool
	value    float64
}

// ConstantMax pins the upper bound to v.
func ConstantMax(v float64) YMax { return YMax{constant: true, value: v} }

// ObservedMax uses the largest value in the data, or 0 if all are negative.
func ObservedMax() YMax { return YMax{} }

// Resolve returns the upper bound for records.
func (m YMax) Resolve(records []history.Record) float64 {
	if m.constant {
		return m.value
	}
	return lo.Reduce(records, func(acc float64, r history.Record, _ int) float64 {
		return math.Max(acc, r.Value)
	}, 0)
}

func (m YMax) String() string {
	if m.constant {
		return fmt.Sprintf("constant(%g)", m.value)
	}
	return "observed"
}

// ColorPolicy maps each mode to its line color.
type ColorPolicy struct {
	Charging    color.RGBA
	Discharging color.RGBA
}

// Color returns the line color for m.
func (p ColorPolicy) Color(m history.Mode) color.RGBA {
	if m == history.Charging {
		return p.Charging
	}
	return p.Discharging
}

// Palette holds the non-series colors of a chart.
type Palette struct {
	Background color.RGBA
	Text       color.RGBA
}

// DefaultColors is green for charging and red for discharging.
func DefaultColors() ColorPolicy {
	return ColorPolicy{
		Charging:    color.RGBA{R: 0xa6, G: 0xe3, B: 0xa1, A: 0xff},
		Discharging: color.RGBA{R: 0xf3, G: 0x8b, B: 0xa8, A: 0xff},
	}
}

// DefaultPalette is a dark background with light text.
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff},
		Text:       color.RGBA{R: 0xcd, G: 0xd6, B: 0xf4, A: 0xff},
	}
}
