package main

import (
	"strings"
	"time"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/chart"
	"github.com/Prajwal-Prathiksh/battery-plot/internal/history"
)

// preset is what one history kind looks like on a chart.
type preset struct {
	Kind    history.Kind
	Title   string
	YMax    chart.YMax
	YLabels chart.LabelStyle
	Window  time.Duration
}

const defaultPreset = "charge"

var presets = map[string]preset{
	"charge": {
		Kind:    history.Charge,
		Title:   "Charge",
		YMax:    chart.ConstantMax(100),
		YLabels: chart.Raw,
		Window:  6 * time.Hour,
	},
	"rate": {
		Kind:    history.Rate,
		Title:   "Rate",
		YMax:    chart.ObservedMax(),
		YLabels: chart.Raw,
		Window:  2 * time.Hour,
	},
	"empty": {
		Kind:    history.TimeEmpty,
		Title:   "Time to Empty",
		YMax:    chart.ObservedMax(),
		YLabels: chart.DurationHoursMinutes,
		Window:  6 * time.Hour,
	},
	"full": {
		Kind:    history.TimeFull,
		Title:   "Time to Full",
		YMax:    chart.ObservedMax(),
		YLabels: chart.DurationHoursMinutes,
		Window:  2 * time.Hour,
	},
}

// lookupPreset falls back to the charge chart for unknown names.
func lookupPreset(name string) (string, preset) {
	name = strings.ToLower(strings.TrimSpace(name))
	if p, ok := presets[name]; ok {
		return name, p
	}
	return defaultPreset, presets[defaultPreset]
}
