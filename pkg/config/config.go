// Package config loads the titlematch configuration and builds engines from it.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/titlematch/pkg/catalog"
	"github.com/hazyhaar/titlematch/pkg/engine"
	"github.com/hazyhaar/titlematch/pkg/metric"
)

// MetricWeight names a metric and its weight.
type MetricWeight struct {
	Name   string  `yaml:"name" toml:"name" json:"name"`
	Weight float64 `yaml:"weight" toml:"weight" json:"weight"`
}

// Config is the service configuration.
type Config struct {
	Addr      string         `yaml:"addr" toml:"addr" json:"addr"`
	Threshold float64        `yaml:"threshold" toml:"threshold" json:"threshold"`
	LogLevel  string         `yaml:"log_level" toml:"log_level" json:"log_level"`
	Catalog   catalog.Source `yaml:"catalog" toml:"catalog" json:"catalog"`
	Metrics   []MetricWeight `yaml:"metrics" toml:"metrics" json:"metrics"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Addr:      ":8421",
		Threshold: engine.DefaultThreshold,
		LogLevel:  "info",
		Catalog:   catalog.Source{Kind: catalog.KindBuiltin},
		Metrics: []MetricWeight{
			{Name: metric.NameJaroWinkler, Weight: 0.4},
			{Name: metric.NameCosine, Weight: 0.6},
		},
	}
}

// Load reads the YAML or TOML file at path over the defaults. A missing file
// yields the defaults. The result is validated.
func Load(path string, logger *slog.Logger) (Config, error) {
	cfg := Default()

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" && ext != ".toml" {
		return cfg, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if ext == ".toml" {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field without opening the catalog.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if !(c.Threshold >= 0 && c.Threshold <= 1) {
		return fmt.Errorf("threshold must be between 0.0 and 1.0, got %v", c.Threshold)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	_, err := c.MetricSet()
	return err
}

// Level parses LogLevel. An empty level is info.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// MetricSet builds the weighted metric set. Errors wrap metric.ErrInvalidConfig.
func (c Config) MetricSet() (*metric.Set, error) {
	if len(c.Metrics) == 0 {
		return nil, fmt.Errorf("%w: no metrics configured", metric.ErrInvalidConfig)
	}
	b := metric.NewBuilder()
	for _, mw := range c.Metrics {
		m, err := metric.ByName(mw.Name)
		if err != nil {
			return nil, err
		}
		if err := b.Add(m, mw.Weight); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// BuildEngine opens the catalog, builds an engine from it and closes the
// catalog again. The engine keeps its own copy of the titles.
func (c Config) BuildEngine(ctx context.Context) (*engine.Engine, error) {
	set, err := c.MetricSet()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Open(ctx, c.Catalog)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer cat.Close()

	return engine.New(cat, set, engine.WithThreshold(c.Threshold))
}
