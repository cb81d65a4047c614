package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/graup/kakaotalk-analyzer/pkg/export"
	"github.com/graup/kakaotalk-analyzer/pkg/stats"
)

// Load reads and validates a configuration file. When path is empty the
// default locations are probed; a missing default file is not an error.
func Load(_ context.Context, path string) (*Config, error) {
	explicit := path != ""
	paths := []string{path}
	if !explicit {
		paths = DefaultPaths()
	}

	for _, p := range paths {
		data, err := os.ReadFile(p) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			if !explicit && os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		cfg := DefaultConfig()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", p, err)
		}

		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("validating config %s: %w", p, err)
		}

		return cfg, nil
	}

	return DefaultConfig(), nil
}

// Validate checks a configuration for errors and compiles custom layouts.
func Validate(cfg *Config) error {
	if cfg.DefaultPeriod == "" {
		cfg.DefaultPeriod = DefaultPeriod
	}
	if _, err := stats.ParsePeriod(cfg.DefaultPeriod); err != nil {
		return fmt.Errorf("default_period: %w", err)
	}

	if cfg.TopN < 0 {
		return errors.New("top: must be positive")
	}
	if cfg.TopN == 0 {
		cfg.TopN = DefaultTopN
	}

	if cfg.ChartWidth < 0 {
		return errors.New("chart_width: must be positive")
	}

	for i := range cfg.Formats {
		if err := validateFormat(&cfg.Formats[i]); err != nil {
			return fmt.Errorf("formats[%d] (%s): %w", i, cfg.Formats[i].Name, err)
		}
	}

	return nil
}

func validateFormat(fc *FormatConfig) error {
	if fc.Name == "" {
		return errors.New("name is required")
	}
	if fc.Pattern == "" {
		return errors.New("pattern is required")
	}
	if fc.Layout == "" {
		return errors.New("layout is required")
	}
	if fc.DatePattern != "" && fc.DateLayout == "" {
		return errors.New("date_layout is required when date_pattern is set")
	}

	lf := &export.LineFormat{
		Name:           fc.Name,
		PatternStr:     fc.Pattern,
		Layout:         fc.Layout,
		DatePatternStr: fc.DatePattern,
		DateLayout:     fc.DateLayout,
	}
	if err := lf.Compile(); err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	fc.compiled = lf
	return nil
}
