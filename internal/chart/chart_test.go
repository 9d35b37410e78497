package chart_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/chart"
	"github.com/Prajwal-Prathiksh/battery-plot/internal/history"
	"github.com/Prajwal-Prathiksh/battery-plot/internal/segment"
)

var t0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func rec(i int, v float64, m history.Mode) history.Record {
	return history.Record{T: t0.Add(time.Duration(i) * time.Minute), Value: v, Mode: m}
}

func testConfig() chart.Config {
	return chart.Config{
		Title:   "Charge",
		YMax:    chart.ConstantMax(100),
		YLabels: chart.Raw,
		Colors:  chart.DefaultColors(),
		Palette: chart.DefaultPalette(),
	}
}

type fakeRenderer struct {
	plans []*chart.Plan
	err   error
}

func (f *fakeRenderer) Render(p *chart.Plan) error {
	f.plans = append(f.plans, p)
	return f.err
}

func TestLabelStyleFormat(t *testing.T) {
	tests := []struct {
		style chart.LabelStyle
		in    float64
		want  string
	}{
		{chart.Raw, 55, "55"},
		{chart.Raw, 12.5, "12.5"},
		{chart.Raw, 0, "0"},
		{chart.DurationHoursMinutes, 5425, "1:30"},
		{chart.DurationHoursMinutes, 59, "0:00"},
		{chart.DurationHoursMinutes, 3600, "1:00"},
		{chart.DurationHoursMinutes, 3599, "0:59"},
		{chart.DurationHoursMinutes, 36000 + 5*60, "10:05"},
		{chart.DurationHoursMinutes, -120, "0:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.style.Format(tt.in), "%v(%v)", tt.style, tt.in)
	}
}

func TestYMaxResolve(t *testing.T) {
	data := []history.Record{
		rec(0, 10, history.Charging),
		rec(1, 55, history.Discharging),
		rec(2, 30, history.Charging),
	}
	assert.Equal(t, 55.0, chart.ObservedMax().Resolve(data))
	assert.Equal(t, 100.0, chart.ConstantMax(100).Resolve(data))

	negative := []history.Record{rec(0, -4, history.Discharging)}
	assert.Equal(t, 0.0, chart.ObservedMax().Resolve(negative))

	var zero chart.YMax
	assert.Equal(t, chart.ObservedMax(), zero)
}

func TestColorPolicy(t *testing.T) {
	p := chart.DefaultColors()
	assert.Equal(t, p.Charging, p.Color(history.Charging))
	assert.Equal(t, p.Discharging, p.Color(history.Discharging))
	assert.NotEqual(t, p.Charging, p.Discharging)
}

func TestResolve(t *testing.T) {
	data := []history.Record{
		rec(0, 10, history.Charging),
		rec(5, 55, history.Discharging),
		rec(9, 30, history.Charging),
	}
	cfg := testConfig()
	cfg.YMax = chart.ObservedMax()
	cfg.YLabels = chart.DurationHoursMinutes

	opts, err := chart.Resolve(data, cfg)
	require.NoError(t, err)
	assert.Equal(t, "Charge", opts.Title)
	assert.Equal(t, data[0].T, opts.X.Start)
	assert.Equal(t, data[2].T, opts.X.End)
	assert.Equal(t, chart.ValueRange{Min: 0, Max: 55}, opts.Y)
	assert.Equal(t, chart.DurationHoursMinutes, opts.YLabels)

	_, err = chart.Resolve(nil, cfg)
	require.ErrorIs(t, err, segment.ErrEmpty)
}

func TestAssembleOrder(t *testing.T) {
	data := []history.Record{
		rec(0, 50, history.Charging),
		rec(1, 51, history.Charging),
		rec(2, 50, history.Discharging),
		rec(3, 52, history.Charging),
		rec(4, 49, history.Discharging),
		rec(5, 48, history.Discharging),
	}
	plan, err := chart.Assemble(data, testConfig())
	require.NoError(t, err)
	require.Len(t, plan.Series, 4)
	assert.Equal(t, len(data), plan.Samples)

	// discharging runs first, then charging, each chronological
	var starts []int
	var modes []history.Mode
	for _, s := range plan.Series {
		starts = append(starts, s.Start)
		modes = append(modes, s.Mode)
	}
	assert.Equal(t, []int{2, 4, 0, 3}, starts)
	assert.Equal(t, []history.Mode{
		history.Discharging, history.Discharging, history.Charging, history.Charging,
	}, modes)

	colors := chart.DefaultColors()
	for _, s := range plan.Series {
		assert.Equal(t, colors.Color(s.Mode), s.Color)
	}

	first := plan.Series[2]
	assert.Equal(t, []float64{50, 51}, first.Values())
	assert.Equal(t, []time.Time{data[0].T, data[1].T}, first.Times())
	assert.Equal(t, []chart.Point{{X: data[0].T, Y: 50}, {X: data[1].T, Y: 51}}, first.Points())
}

func TestAssembleSingleMode(t *testing.T) {
	data := []history.Record{
		rec(0, 1, history.Charging),
		rec(1, 2, history.Charging),
		rec(2, 3, history.Charging),
	}
	plan, err := chart.Assemble(data, testConfig())
	require.NoError(t, err)
	require.Len(t, plan.Series, 1)
	assert.Equal(t, history.Charging, plan.Series[0].Mode)
	assert.Equal(t, 3, plan.Series[0].Len())
}

func TestAssembleEmpty(t *testing.T) {
	plan, err := chart.Assemble(nil, testConfig())
	require.ErrorIs(t, err, segment.ErrEmpty)
	assert.Nil(t, plan)
}

func TestPlanFormatters(t *testing.T) {
	cfg := testConfig()
	cfg.YLabels = chart.DurationHoursMinutes
	plan, err := chart.Assemble([]history.Record{rec(90, 5425, history.Discharging)}, cfg)
	require.NoError(t, err)
	assert.Equal(t, "09:30", plan.FormatX(plan.X.Start))
	assert.Equal(t, "1:30", plan.FormatY(5425))
}

func TestDraw(t *testing.T) {
	data := []history.Record{rec(0, 40, history.Discharging), rec(1, 41, history.Charging)}

	r := &fakeRenderer{}
	require.NoError(t, chart.Draw(data, testConfig(), r))
	require.Len(t, r.plans, 1)
	assert.Len(t, r.plans[0].Series, 2)
	assert.Equal(t, chart.DefaultPalette(), r.plans[0].Palette)
}

func TestDrawRenderFailure(t *testing.T) {
	boom := errors.New("disk full")
	r := &fakeRenderer{err: boom}

	err := chart.Draw([]history.Record{rec(0, 40, history.Charging)}, testConfig(), r)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "chart: render")
	assert.Len(t, r.plans, 1, "no retry")
}

func TestDrawEmptyNeverRenders(t *testing.T) {
	r := &fakeRenderer{}
	require.ErrorIs(t, chart.Draw(nil, testConfig(), r), segment.ErrEmpty)
	assert.Empty(t, r.plans)
}
