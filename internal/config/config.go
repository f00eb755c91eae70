package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/barviz/internal/dataset"
	"github.com/san-kum/barviz/internal/loop"
	"github.com/san-kum/barviz/internal/render"
)

const (
	DefaultSpeed      = 500
	DefaultWidth      = 800
	DefaultHeight     = 400
	DefaultTheme      = "slate"
	DefaultTransition = "smooth"
	DefaultDataDir    = ".barviz"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Count      int          `yaml:"count"`
	Seed       int64        `yaml:"seed"`
	Speed      int          `yaml:"speed"`
	Sort       string       `yaml:"sort"`
	Autoplay   bool         `yaml:"autoplay"`
	Transition string       `yaml:"transition"`
	Theme      string       `yaml:"theme"`
	DataDir    string       `yaml:"data_dir"`
	LogFile    string       `yaml:"log_file"`
	Export     ExportConfig `yaml:"export"`
}

type ExportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Count:      dataset.DefaultCount,
		Speed:      DefaultSpeed,
		Sort:       dataset.SortNone.String(),
		Transition: DefaultTransition,
		Theme:      DefaultTheme,
		DataDir:    DefaultDataDir,
		Export: ExportConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Count < 1 || c.Count > len(dataset.Labels) {
		return fmt.Errorf("count %d not in [1, %d]: %w", c.Count, len(dataset.Labels), ErrInvalid)
	}
	if _, err := loop.IntervalForSpeed(c.Speed); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if _, err := dataset.ParseSortMode(c.Sort); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if _, err := render.ParseTransition(c.Transition); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if c.Export.Width <= 0 || c.Export.Height <= 0 {
		return fmt.Errorf("export size %dx%d: %w", c.Export.Width, c.Export.Height, ErrInvalid)
	}
	return nil
}

// Interval is the tick period for the configured speed.
func (c *Config) Interval() time.Duration {
	d, err := loop.IntervalForSpeed(c.Speed)
	if err != nil {
		return loop.DefaultInterval
	}
	return d
}

func (c *Config) SortMode() dataset.SortMode {
	m, _ := dataset.ParseSortMode(c.Sort)
	return m
}

func (c *Config) TransitionMode() render.TransitionMode {
	m, _ := render.ParseTransition(c.Transition)
	return m
}

// SeedOrNow returns the configured seed, or the current time when unset.
func (c *Config) SeedOrNow() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
