package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/chart"
	"github.com/Prajwal-Prathiksh/battery-plot/internal/history"

	log "github.com/sirupsen/logrus"

	"github.com/mum4k/termdash/cell"
	"github.com/mum4k/termdash/terminal/terminalapi"
	"github.com/mum4k/termdash/widgets/text"
)

// Loader returns the records to plot, already windowed and time ordered.
type Loader func() ([]history.Record, error)

// Refresh wires the data source to the widgets.
type Refresh struct {
	Load        Loader
	Config      chart.Config
	Renderer    *Renderer
	Text        *text.Text
	DataFile    string
	ConfigPaths []string

	mu sync.Mutex
}

// Update reloads the records and redraws the chart and status text.
func (r *Refresh) Update() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.Load()
	if err != nil {
		r.Text.Reset()
		r.Text.Write(fmt.Sprintf("Could not read data from %s: %v\n", r.DataFile, err), text.WriteCellOpts(cell.FgColor(cell.ColorRed)))
		r.Text.Write("Press q to quit, r to refresh\n")
		return nil
	}

	plan, err := chart.Assemble(records, r.Config)
	if err != nil {
		return fmt.Errorf("assembling chart: %v", err)
	}
	if err := r.Renderer.Render(plan); err != nil {
		return fmt.Errorf("updating chart: %v", err)
	}

	info, err := GenerateStatusInfo(records, plan, r.Config.Colors, r.DataFile, r.ConfigPaths)
	if err != nil {
		return fmt.Errorf("generating status: %v", err)
	}
	UpdateStatusText(r.Text, info)
	return nil
}

// SetupDataRefresh starts the periodic refresh and returns the update function
func SetupDataRefresh(ctx context.Context, r *Refresh, uiParams *UIParams) func() error {
	refreshTicker := time.NewTicker(uiParams.Get())

	go func() {
		defer refreshTicker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-refreshTicker.C:
				if err := r.Update(); err != nil {
					log.Errorf("Data update error: %v", err)
				}
			}
		}
	}()

	return r.Update
}

// CreateKeyboardHandler creates the keyboard event handler for the TUI
func CreateKeyboardHandler(cancel context.CancelFunc, updateData func() error) func(*terminalapi.Keyboard) {
	return func(k *terminalapi.Keyboard) {
		if k.Key == 'q' || k.Key == 'Q' {
			cancel()
		}
		if k.Key == 'r' || k.Key == 'R' {
			if err := updateData(); err != nil {
				log.Errorf("Manual refresh error: %v", err)
			}
		}
	}
}
