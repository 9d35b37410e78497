package tui

import (
	"fmt"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/chart"
	"github.com/Prajwal-Prathiksh/battery-plot/internal/history"
	"github.com/Prajwal-Prathiksh/battery-plot/internal/segment"
)

// GenerateStatusInfo summarises the plotted records (logic only).
func GenerateStatusInfo(records []history.Record, plan *chart.Plan, colors chart.ColorPolicy, dataFile string, configPaths []string) (StatusInfo, error) {
	runs, err := segment.Segment(records)
	if err != nil {
		return StatusInfo{}, err
	}

	all := runs.All()
	last := all[len(all)-1]
	latest := records[len(records)-1]
	first := records[0]

	info := StatusInfo{
		Title:              plan.Title,
		Latest:             latest,
		LatestValue:        plan.FormatY(latest.Value),
		RunStart:           last.Records[0].T,
		RunStartValue:      plan.FormatY(last.Records[0].Value),
		RunSamples:         last.Len(),
		TotalSamples:       runs.Records(),
		ChargingSamples:    runs.Samples(history.Charging),
		DischargingSamples: runs.Samples(history.Discharging),
		ChargingRuns:       len(runs.Charging),
		DischargingRuns:    len(runs.Discharging),
		TimeRange:          latest.T.Sub(first.T),
		StartTime:          plan.FormatX(first.T),
		EndTime:            plan.FormatX(latest.T),
		DataFile:           dataFile,
		ChargingColor:      CellColor(colors.Charging),
		DischargingColor:   CellColor(colors.Discharging),
	}
	switch len(configPaths) {
	case 0:
		info.ConfigStr = "Config: Using defaults (no config file found)"
	case 1:
		info.ConfigStr = fmt.Sprintf("Config file: %s", configPaths[0])
	default:
		info.ConfigStr = fmt.Sprintf("Config files: %s (+ %d more)", configPaths[len(configPaths)-1], len(configPaths)-1)
	}
	return info, nil
}
