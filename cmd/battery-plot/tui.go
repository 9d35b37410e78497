package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/chart"
	"github.com/Prajwal-Prathiksh/battery-plot/internal/config"
	"github.com/Prajwal-Prathiksh/battery-plot/internal/history"
	"github.com/Prajwal-Prathiksh/battery-plot/internal/tui"

	"github.com/mum4k/termdash"
	"github.com/mum4k/termdash/terminal/tcell"
)

// tuiCmd shows the chart with termdash and re-reads the history file on
// every refresh.
func tuiCmd(c *cli.Context) error {
	kind, hours := positional(c)
	s, err := loadSettings(c, kind, hours)
	if err != nil {
		return err
	}
	uiParams := &tui.UIParams{Refresh: c.Duration("refresh")}
	if uiParams.Refresh <= 0 {
		uiParams.Refresh = 10 * time.Second
	}

	// the first plan sizes the y-axis, so fail before touching the terminal
	records, path, err := loadRecords(s, time.Now())
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	plan, err := chart.Assemble(records, s.Chart)
	if err != nil {
		return err
	}

	t, err := tcell.New()
	if err != nil {
		return fmt.Errorf("tcell.New => %v", err)
	}
	defer t.Close()

	chartWidget, err := tui.CreateChartWidget(plan)
	if err != nil {
		return fmt.Errorf("CreateChartWidget => %v", err)
	}
	textWidget, err := tui.CreateTextWidget()
	if err != nil {
		return fmt.Errorf("CreateTextWidget => %v", err)
	}
	cont, err := tui.CreateUILayout(t, s.Chart.Title, chartWidget, textWidget)
	if err != nil {
		return fmt.Errorf("CreateUILayout => %v", err)
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	_, existing := config.GetConfigPaths()
	refresh := &tui.Refresh{
		Load: func() ([]history.Record, error) {
			records, _, err := loadRecords(s, time.Now())
			return records, err
		},
		Config:      s.Chart,
		Renderer:    &tui.Renderer{Chart: chartWidget, Container: cont},
		Text:        textWidget,
		DataFile:    path,
		ConfigPaths: existing,
	}
	updateData := tui.SetupDataRefresh(ctx, refresh, uiParams)

	if err := updateData(); err != nil {
		log.Errorf("Initial data load error: %v", err)
	}

	keyboardHandler := tui.CreateKeyboardHandler(cancel, updateData)
	if err := termdash.Run(ctx, t, cont, termdash.KeyboardSubscriber(keyboardHandler), termdash.RedrawInterval(uiParams.Get())); err != nil {
		return fmt.Errorf("termdash.Run => %v", err)
	}
	return nil
}
