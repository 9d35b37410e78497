package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/xhit/go-str2duration/v2"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/chart"
	"github.com/Prajwal-Prathiksh/battery-plot/internal/config"
	"github.com/Prajwal-Prathiksh/battery-plot/internal/history"
	"github.com/Prajwal-Prathiksh/battery-plot/internal/render/svg"
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04",
	})
}

func main() {
	app := &cli.App{
		Name:      "battery-plot",
		HelpName:  "battery-plot",
		Usage:     "Plot upower battery history, colored by charging state",
		ArgsUsage: "[kind] [hours]",
		Flags:     plotFlags(),
		Action: func(c *cli.Context) error {
			kind, hours := positional(c)
			return plotCmd(c, kind, hours)
		},
		Commands: []*cli.Command{
			plotCommand("charge", "Battery charge in percent"),
			plotCommand("rate", "Energy rate in watts"),
			plotCommand("empty", "Estimated time to empty"),
			plotCommand("full", "Estimated time to full"),
			{
				Name:      "tui",
				Usage:     "Show a chart in the terminal and keep it refreshed",
				ArgsUsage: "[charge|rate|empty|full] [hours]",
				Flags: append(plotFlags(), &cli.DurationFlag{
					Name:  "refresh",
					Usage: "UI refresh period (e.g., 2s, 1m)",
					Value: 10 * time.Second,
				}),
				Action: tuiCmd,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func plotCommand(name, usage string) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "[hours]",
		Flags:     plotFlags(),
		Action: func(c *cli.Context) error {
			return plotCmd(c, name, c.Args().First())
		},
	}
}

func plotFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "extra config file, eg. ./battery-plot.yaml",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "image path; .svg or .png (default from config, /tmp/out.svg)",
		},
		&cli.StringFlag{
			Name:    "window",
			Aliases: []string{"w"},
			Usage:   "history to show, eg. 90m, 6h, 2d; a bare number is hours",
		},
		&cli.StringFlag{
			Name:  "device",
			Usage: "upower device name, eg. BAT0",
		},
		&cli.StringFlag{
			Name:  "history-dir",
			Usage: "upower history directory",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "svg or png (default from the output extension)",
		},
		&cli.IntFlag{
			Name:  "width",
			Usage: "image width in pixels",
		},
		&cli.IntFlag{
			Name:  "height",
			Usage: "image height in pixels",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "eg. debug, info, warn",
		},
	}
}

// positional reads "[kind] [hours]". A leading number is taken as hours
// for the default chart; unknown kinds fall back to it in lookupPreset.
func positional(c *cli.Context) (kind, hours string) {
	kind, hours = c.Args().Get(0), c.Args().Get(1)
	if _, err := parseWindow(kind); err == nil {
		kind, hours = defaultPreset, kind
	}
	return kind, hours
}

// settings is one resolved invocation.
type settings struct {
	Config config.Config
	Preset preset
	Name   string
	Window time.Duration
	Chart  chart.Config
}

func loadSettings(c *cli.Context, kind, hours string) (settings, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return settings{}, fmt.Errorf("config: %w", err)
	}
	if v := c.String("output"); v != "" {
		cfg.Output = v
	}
	if v := c.String("device"); v != "" {
		cfg.Device = v
	}
	if v := c.String("history-dir"); v != "" {
		cfg.HistoryDir = v
	}
	if v := c.Int("width"); v > 0 {
		cfg.Width = v
	}
	if v := c.Int("height"); v > 0 {
		cfg.Height = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("log level %q: %v", cfg.LogLevel, err)
	}

	name, p := lookupPreset(kind)
	window := p.Window
	if v := c.String("window"); v != "" {
		hours = v
	}
	if hours != "" {
		d, err := parseWindow(hours)
		if err != nil {
			return settings{}, fmt.Errorf("bad window %q: %w", hours, err)
		}
		window = d
	}

	pal, colors, err := config.Palette(cfg)
	if err != nil {
		return settings{}, fmt.Errorf("config: %w", err)
	}

	return settings{
		Config: cfg,
		Preset: p,
		Name:   name,
		Window: window,
		Chart: chart.Config{
			Title:   p.Title,
			YMax:    p.YMax,
			YLabels: p.YLabels,
			Colors:  colors,
			Palette: pal,
		},
	}, nil
}

// parseWindow accepts a bare number of hours or a duration with d/w units.
func parseWindow(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if h, err := strconv.ParseFloat(s, 64); err == nil {
		if h <= 0 {
			return 0, fmt.Errorf("window must be positive")
		}
		return time.Duration(h * float64(time.Hour)), nil
	}
	d, err := str2duration.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("window must be positive")
	}
	return d, nil
}

// loadRecords reads, windows and localizes the preset's history file.
func loadRecords(s settings, now time.Time) ([]history.Record, string, error) {
	path, err := history.Locate(s.Config.HistoryDir, s.Config.Device, s.Preset.Kind)
	if err != nil {
		return nil, "", err
	}
	records, err := history.Read(path)
	if err != nil {
		return nil, path, err
	}
	log.Debugf("read %d %s records from %s", len(records), s.Preset.Kind, path)

	records, err = history.Window(records, now, s.Window)
	if err != nil {
		return nil, path, err
	}
	loc, err := config.Location(s.Config)
	if err != nil {
		return nil, path, fmt.Errorf("timezone: %w", err)
	}
	return history.In(records, loc), path, nil
}

func plotCmd(c *cli.Context, kind, hours string) error {
	s, err := loadSettings(c, kind, hours)
	if err != nil {
		return err
	}

	records, path, err := loadRecords(s, time.Now())
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	r := &svg.Renderer{
		Path:   s.Config.Output,
		Width:  s.Config.Width,
		Height: s.Config.Height,
		Format: svg.Format(c.String("format")),
	}
	if err := chart.Draw(records, s.Chart, r); err != nil {
		return err
	}
	log.Infof("%s: %d samples from %s -> %s", s.Name, len(records), path, r.Path)
	return nil
}
