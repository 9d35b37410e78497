package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoDevice is returned when no history file exists for a kind.
var ErrNoDevice = errors.New("no upower history file found")

// Kind selects which upower history file to read.
type Kind int

const (
	Charge Kind = iota
	Rate
	TimeEmpty
	TimeFull
)

// Token is the name fragment upower uses for the kind's file.
func (k Kind) Token() string {
	switch k {
	case Rate:
		return "rate"
	case TimeEmpty:
		return "time-empty"
	case TimeFull:
		return "time-full"
	default:
		return "charge"
	}
}

func (k Kind) String() string { return k.Token() }

// File returns the history file path for one device.
func File(dir, device string, k Kind) string {
	return filepath.Join(dir, fmt.Sprintf("history-%s-%s.dat", k.Token(), device))
}

// Locate resolves the history file for k. With an empty device the first
// matching file in dir is used.
func Locate(dir, device string, k Kind) (string, error) {
	if device != "" {
		p := File(dir, device, k)
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoDevice, err)
		}
		return p, nil
	}

	matches, _ := filepath.Glob(filepath.Join(dir, fmt.Sprintf("history-%s-*.dat", k.Token())))
	if len(matches) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoDevice, dir)
	}
	sort.Strings(matches)
	return matches[0], nil
}
