package main

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/chart"
	"github.com/Prajwal-Prathiksh/battery-plot/internal/history"
)

func TestParseWindow(t *testing.T) {
	tests := map[string]time.Duration{
		"2":   2 * time.Hour,
		"1.5": 90 * time.Minute,
		"90m": 90 * time.Minute,
		"6h":  6 * time.Hour,
		"2d":  48 * time.Hour,
		"1w":  7 * 24 * time.Hour,
	}
	for in, want := range tests {
		got, err := parseWindow(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"0", "-3", "soon"} {
		_, err := parseWindow(in)
		assert.Error(t, err, in)
	}
}

func TestLookupPreset(t *testing.T) {
	name, p := lookupPreset("empty")
	assert.Equal(t, "empty", name)
	assert.Equal(t, history.TimeEmpty, p.Kind)
	assert.Equal(t, chart.DurationHoursMinutes, p.YLabels)
	assert.Equal(t, chart.ObservedMax(), p.YMax)

	name, p = lookupPreset("bogus")
	assert.Equal(t, "charge", name)
	assert.Equal(t, chart.ConstantMax(100), p.YMax)
	assert.Equal(t, 6*time.Hour, p.Window)

	_, p = lookupPreset(" RATE ")
	assert.Equal(t, history.Rate, p.Kind)
}

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range plotFlags() {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestPlotCmd(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()

	now := time.Now().Unix()
	var body []byte
	for i, state := range []string{"discharging", "discharging", "charging", "charging", "discharging"} {
		ts := now - int64(5-i)*600
		body = append(body, []byte(strconv.FormatInt(ts, 10)+"\t"+strconv.Itoa(50+i)+"\t"+state+"\n")...)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history-charge-BAT0.dat"), body, 0o644))

	out := filepath.Join(t.TempDir(), "charge.svg")
	c := newContext(t, "--history-dir", dir, "--output", out)
	require.NoError(t, plotCmd(c, "charge", "2"))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestPlotCmdFilteredOut(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history-rate-BAT0.dat"), []byte("1000\t12.5\tdischarging\n"), 0o644))

	out := filepath.Join(t.TempDir(), "rate.svg")
	c := newContext(t, "--history-dir", dir, "--output", out)
	err := plotCmd(c, "rate", "")
	require.ErrorIs(t, err, history.ErrFilteredOut)

	_, statErr := os.Stat(out)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestLoadSettingsFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := newContext(t, "--window", "3d", "--device", "BAT1", "--width", "640")

	s, err := loadSettings(c, "full", "")
	require.NoError(t, err)
	assert.Equal(t, "full", s.Name)
	assert.Equal(t, 72*time.Hour, s.Window)
	assert.Equal(t, "BAT1", s.Config.Device)
	assert.Equal(t, 640, s.Config.Width)
	assert.Equal(t, "Time to Full", s.Chart.Title)
	assert.Equal(t, chart.DefaultColors(), s.Chart.Colors)

	_, err = loadSettings(newContext(t), "charge", "later")
	assert.Error(t, err)
}

func TestPositional(t *testing.T) {
	kind, hours := positional(newContext(t, "4"))
	assert.Equal(t, "charge", kind)
	assert.Equal(t, "4", hours)

	kind, hours = positional(newContext(t, "rate", "2"))
	assert.Equal(t, "rate", kind)
	assert.Equal(t, "2", hours)
}
