// Package segment splits a time ordered record sequence into maximal runs
// of constant charge mode.
package segment

import (
	"errors"
	"sort"

	"github.com/samber/lo"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/history"
)

// ErrEmpty is returned when there is nothing to segment.
var ErrEmpty = errors.New("segment: empty record sequence")

// Run is a maximal contiguous stretch of records sharing one mode.
// Records is src[Start:End] of the sequence passed to Segment, not a copy.
type Run struct {
	Mode    history.Mode
	Start   int
	End     int
	Records []history.Record
}

// Len returns the number of records in the run.
func (r Run) Len() int { return r.End - r.Start }

// RunSet holds the runs of each mode in chronological order.
type RunSet struct {
	Charging    []Run
	Discharging []Run
}

// Of returns the runs of one mode.
func (s RunSet) Of(m history.Mode) []Run {
	if m == history.Charging {
		return s.Charging
	}
	return s.Discharging
}

// Len returns the total number of runs.
func (s RunSet) Len() int { return len(s.Charging) + len(s.Discharging) }

// All returns every run in the order it appeared in the source sequence.
func (s RunSet) All() []Run {
	all := append(append(make([]Run, 0, s.Len()), s.Charging...), s.Discharging...)
	sort.Slice(all, func(i, j int) bool { return all[i].Start < all[j].Start })
	return all
}

// Records returns the number of records covered by the set.
func (s RunSet) Records() int {
	return s.Samples(history.Charging) + s.Samples(history.Discharging)
}

// Samples returns the number of records in the runs of mode m.
func (s RunSet) Samples(m history.Mode) int {
	return lo.SumBy(s.Of(m), Run.Len)
}

// Segment partitions records into maximal same-mode runs in one pass.
// Time order is the caller's responsibility; runs follow slice position.
func Segment(records []history.Record) (RunSet, error) {
	if len(records) == 0 {
		return RunSet{}, ErrEmpty
	}

	var set RunSet
	push := func(start, end int) {
		run := Run{
			Mode:    records[start].Mode,
			Start:   start,
			End:     end,
			Records: records[start:end:end],
		}
		if run.Mode == history.Charging {
			set.Charging = append(set.Charging, run)
		} else {
			set.Discharging = append(set.Discharging, run)
		}
	}

	start := 0
	for i := 1; i < len(records); i++ {
		if records[i].Mode != records[start].Mode {
			push(start, i)
			start = i
		}
	}
	push(start, len(records))

	return set, nil
}
