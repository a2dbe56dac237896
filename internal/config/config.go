// Package config loads and saves the schedule settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/constants"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
)

var (
	ErrEmptyPath  = errors.New("config path is empty")
	ErrNilConfig  = errors.New("config is nil")
	ErrInvalidKey = errors.New("invalid config value")
)

// DefaultPath is where the settings file lives unless --config says otherwise.
const DefaultPath = "~/.norfolk-cleaners/config.yaml"

// Config is the schedule configuration.
type Config struct {
	// Timezone is the IANA zone jobs are displayed in, or "Local".
	Timezone string `yaml:"timezone"`

	// StartHour and EndHour bound the visible working day.
	StartHour int `yaml:"start_hour"`
	EndHour   int `yaml:"end_hour"`

	// Day and week views: pixels per hour on the vertical axis.
	HourHeightPx     float64 `yaml:"hour_height_px"`
	WeekHourHeightPx float64 `yaml:"week_hour_height_px"`

	// Dispatch board: pixels per slot on the horizontal axis.
	SlotMinutes int     `yaml:"slot_minutes"`
	SlotWidthPx float64 `yaml:"slot_width_px"`
	RowHeightPx float64 `yaml:"row_height_px"`

	MinLengthPx float64 `yaml:"min_length_px"`
	GapPx       float64 `yaml:"gap_px"`

	// NowInterval is how often the current-time line moves.
	NowInterval time.Duration `yaml:"now_interval"`

	// RefreshCron schedules job reloads on the board, e.g. "*/5 * * * *".
	RefreshCron string `yaml:"refresh"`

	// JobsDir holds job files; empty means demo data.
	JobsDir     string `yaml:"jobs_dir"`
	Concurrency int    `yaml:"concurrency"`

	DefaultView string `yaml:"default_view"`

	// Staff is the dispatch board roster in row order.
	Staff []model.Staff `yaml:"staff"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	cfg := &Config{GapPx: constants.ColumnGapPx}
	cfg.Normalize()
	return cfg
}

// Normalize fills zero values with defaults. A zero gap is kept, so only a
// negative GapPx is replaced.
func (c *Config) Normalize() {
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.StartHour == 0 && c.EndHour == 0 {
		c.StartHour = constants.DefaultStartHour
		c.EndHour = constants.DefaultEndHour
	}
	if c.HourHeightPx <= 0 {
		c.HourHeightPx = constants.HourHeightPx
	}
	if c.WeekHourHeightPx <= 0 {
		c.WeekHourHeightPx = constants.WeekHourHeightPx
	}
	if c.SlotMinutes <= 0 {
		c.SlotMinutes = constants.SlotMinutes
	}
	if c.SlotWidthPx <= 0 {
		c.SlotWidthPx = constants.SlotWidthPx
	}
	if c.RowHeightPx <= 0 {
		c.RowHeightPx = constants.RowHeightPx
	}
	if c.MinLengthPx <= 0 {
		c.MinLengthPx = constants.MinLengthPx
	}
	if c.GapPx < 0 {
		c.GapPx = constants.ColumnGapPx
	}
	if c.NowInterval <= 0 {
		c.NowInterval = constants.NowIndicatorInterval
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "*/5 * * * *"
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.DefaultView == "" {
		c.DefaultView = "day"
	}
	if c.Staff == nil {
		c.Staff = []model.Staff{}
	}
}

// Validate rejects settings the layout engine cannot work with.
func (c *Config) Validate() error {
	if c.StartHour < 0 || c.EndHour > 24 || c.EndHour <= c.StartHour {
		return fmt.Errorf("%w: working day %02d:00-%02d:00 must satisfy 0 <= start < end <= 24",
			ErrInvalidKey, c.StartHour, c.EndHour)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidKey, c.Timezone, err)
	}
	if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
		return fmt.Errorf("%w: refresh %q: %v", ErrInvalidKey, c.RefreshCron, err)
	}
	seen := make(map[string]bool, len(c.Staff))
	for _, s := range c.Staff {
		if s.ID == "" {
			return fmt.Errorf("%w: staff member %q has no id", ErrInvalidKey, s.Name)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate staff id %q", ErrInvalidKey, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// HourWidthPx is the dispatch board scale in pixels per hour.
func (c *Config) HourWidthPx() float64 {
	return c.SlotWidthPx * 60 / float64(c.SlotMinutes)
}

// Window returns the working day window on the calendar day of day.
func (c *Config) Window(day time.Time) model.Window {
	return model.DayWindow(day, c.StartHour, c.EndHour)
}

// Load reads the YAML file at path. A missing file is created with the
// defaults and 0600 permissions.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	// Keys missing from the file keep their defaults.
	cfg := &Config{GapPx: constants.ColumnGapPx}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path through a temp file and rename.
func Save(path string, cfg *Config) error {
	if path == "" {
		return ErrEmptyPath
	}
	if cfg == nil {
		return ErrNilConfig
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".norfolk-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
