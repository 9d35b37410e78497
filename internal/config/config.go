package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/Prajwal-Prathiksh/battery-plot/internal/chart"
)

type Colors struct {
	Background  string `yaml:"background"`
	Text        string `yaml:"text"`
	Charging    string `yaml:"charging"`
	Discharging string `yaml:"discharging"`
}

type Config struct {
	HistoryDir string `yaml:"history_dir"`
	Device     string `yaml:"device"` // empty picks the first battery found
	Output     string `yaml:"output"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Timezone   string `yaml:"timezone"` // "Local", "UTC" or an IANA name
	LogLevel   string `yaml:"log_level"`
	Colors     Colors `yaml:"colors"`
}

func Defaults() Config {
	return Config{
		HistoryDir: "/var/lib/upower",
		Output:     filepath.Join(os.TempDir(), "out.svg"),
		Width:      1024,
		Height:     768,
		Timezone:   "Local",
		LogLevel:   "info",
		Colors: Colors{
			Background:  "#1e1e2e",
			Text:        "#cdd6f4",
			Charging:    "#a6e3a1",
			Discharging: "#f38ba8",
		},
	}
}

// getConfigPathsInternal returns the list of config file paths that are checked
func getConfigPathsInternal() []string {
	return []string{
		// System config
		"/etc/battery-plot/config.yaml",
		// User config
		filepath.Join(xdgConfigHome(), "battery-plot", "config.yaml"),
		// Local project config
		"battery-plot.yaml",
	}
}

// GetConfigPaths returns the list of config file paths that are checked, and which ones exist
func GetConfigPaths() ([]string, []string) {
	relativePaths := getConfigPathsInternal()

	var allPaths []string
	var existingPaths []string

	for _, path := range relativePaths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			absPath = path
		}
		allPaths = append(allPaths, absPath)

		if _, err := os.Stat(path); err == nil {
			existingPaths = append(existingPaths, absPath)
		}
	}

	return allPaths, existingPaths
}

// Load reads the default config paths in order, later ones overriding
// earlier ones, then the extra paths (e.g. from a flag), which must exist.
func Load(extra ...string) (Config, error) {
	cfg := Defaults()

	for _, path := range getConfigPathsInternal() {
		if err := loadConfigFile(path, &cfg); err != nil {
			// Only return error if it's not a "file not found" error
			if !errors.Is(err, os.ErrNotExist) {
				return cfg, err
			}
		}
	}
	for _, path := range extra {
		if path == "" {
			continue
		}
		if err := loadConfigFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.HistoryDir = expandHome(cfg.HistoryDir)
	cfg.Output = expandHome(cfg.Output)
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Location resolves the configured timezone.
func Location(cfg Config) (*time.Location, error) {
	switch {
	case cfg.Timezone == "", strings.EqualFold(cfg.Timezone, "Local"):
		return time.Local, nil
	case strings.EqualFold(cfg.Timezone, "UTC"):
		return time.UTC, nil
	default:
		return time.LoadLocation(cfg.Timezone)
	}
}

// Palette parses the configured hex colors.
func Palette(cfg Config) (chart.Palette, chart.ColorPolicy, error) {
	var (
		pal  chart.Palette
		pol  chart.ColorPolicy
		errs []error
	)
	parse := func(name, hex string, dst *color.RGBA) {
		c, err := colorful.Hex(hex)
		if err != nil {
			errs = append(errs, fmt.Errorf("colors.%s: %w", name, err))
			return
		}
		r, g, b := c.RGB255()
		*dst = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	parse("background", cfg.Colors.Background, &pal.Background)
	parse("text", cfg.Colors.Text, &pal.Text)
	parse("charging", cfg.Colors.Charging, &pol.Charging)
	parse("discharging", cfg.Colors.Discharging, &pol.Discharging)

	return pal, pol, errors.Join(errs...)
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func xdgConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
