package tui

import (
	"sync"
	"time"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/history"

	"github.com/mum4k/termdash/cell"
)

// UIParams holds the real-time adjustable parameters
type UIParams struct {
	Refresh time.Duration
	mu      sync.RWMutex
}

// Get returns thread-safe copies of the parameters
func (p *UIParams) Get() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Refresh
}

// StatusInfo holds information needed for status display
type StatusInfo struct {
	Title              string
	Latest             history.Record
	LatestValue        string
	RunStart           time.Time
	RunStartValue      string
	RunSamples         int
	TotalSamples       int
	ChargingSamples    int
	DischargingSamples int
	ChargingRuns       int
	DischargingRuns    int
	TimeRange          time.Duration
	StartTime          string
	EndTime            string
	DataFile           string
	ConfigStr          string
	ChargingColor      cell.Color
	DischargingColor   cell.Color
}
