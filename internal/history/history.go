// Package history reads the battery history files written by upower.
package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrFilteredOut is returned when a time window leaves no records.
var ErrFilteredOut = errors.New("all data filtered out")

// Mode is the charge state a sample was taken in.
type Mode int

const (
	Charging Mode = iota
	Discharging
)

func (m Mode) String() string {
	switch m {
	case Charging:
		return "charging"
	case Discharging:
		return "discharging"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the upower state tokens "charging" and "discharging".
// Every other upower state (unknown, fully-charged, empty, pending-*) is rejected.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "charging":
		return Charging, nil
	case "discharging":
		return Discharging, nil
	default:
		return 0, fmt.Errorf("bad state: %q", s)
	}
}

// Record is a single history sample.
type Record struct {
	T     time.Time
	Value float64
	Mode  Mode
}

// Read opens path and parses it with Parse.
func Read(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads tab separated "unix-seconds value state" lines. Lines that
// cannot be parsed are skipped. The result is ordered by time.
func Parse(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	var out []Record
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, err
		}
		row, err := parseRecord(rec)
		if err != nil {
			continue
		}
		out = append(out, row)
	}

	// upower appends in order; this only matters for hand-edited files
	sort.SliceStable(out, func(i, j int) bool { return out[i].T.Before(out[j].T) })
	return out, nil
}

func parseRecord(rec []string) (Record, error) {
	if len(rec) < 3 {
		return Record{}, fmt.Errorf("insufficient columns")
	}

	secs, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
	if err != nil {
		return Record{}, err
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil {
		return Record{}, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Record{}, fmt.Errorf("non-finite value %q", rec[1])
	}

	mode, err := ParseMode(rec[2])
	if err != nil {
		return Record{}, err
	}

	return Record{T: time.Unix(secs, 0).UTC(), Value: v, Mode: mode}, nil
}

// Since drops the leading records older than cutoff. Records must be time
// ordered; anything after the first kept record is kept.
func Since(records []Record, cutoff time.Time) []Record {
	for i, r := range records {
		if !r.T.Before(cutoff) {
			return records[i:]
		}
	}
	return nil
}

// Window keeps the records of the last d before now and fails with
// ErrFilteredOut when nothing is left.
func Window(records []Record, now time.Time, d time.Duration) ([]Record, error) {
	kept := Since(records, now.Add(-d))
	if len(kept) == 0 {
		return nil, ErrFilteredOut
	}
	return kept, nil
}

// In converts every timestamp to loc, in place.
func In(records []Record, loc *time.Location) []Record {
	for i := range records {
		records[i].T = records[i].T.In(loc)
	}
	return records
}
