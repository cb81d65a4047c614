// Package config provides configuration loading and validation for ktalk.
package config

import (
	"github.com/graup/kakaotalk-analyzer/pkg/export"
)

// Config is the root configuration structure loaded from YAML.
// All fields are optional; zero values fall back to built-in defaults.
type Config struct {
	// DefaultPeriod is the bucket granularity used when no period
	// argument is given (day, week, month).
	DefaultPeriod string `yaml:"default_period,omitempty"`

	// TopN bounds ranked listings (most active days, top words).
	TopN int `yaml:"top,omitempty"`

	// ChartWidth overrides the terminal width used for charts.
	ChartWidth int `yaml:"chart_width,omitempty"`

	// Formats are additional export layouts tried before the built-in
	// ones.
	Formats []FormatConfig `yaml:"formats,omitempty"`
}

// FormatConfig defines a custom export layout.
type FormatConfig struct {
	// Name identifies the layout in detection output.
	Name string `yaml:"name"`

	// Pattern is a regex matching a message line with three capture
	// groups: timestamp, sender, text.
	Pattern string `yaml:"pattern"`

	// Layout is the Go time layout for the captured timestamp.
	Layout string `yaml:"layout"`

	// DatePattern optionally matches a day-divider line with one capture
	// group holding the date.
	DatePattern string `yaml:"date_pattern,omitempty"`

	// DateLayout is the Go time layout for the day-divider date.
	DateLayout string `yaml:"date_layout,omitempty"`

	// compiled is populated during validation.
	compiled *export.LineFormat
}

// LineFormat returns the compiled layout (populated during validation).
func (f *FormatConfig) LineFormat() *export.LineFormat {
	return f.compiled
}

// LineFormats returns all compiled custom layouts.
func (c *Config) LineFormats() []*export.LineFormat {
	formats := make([]*export.LineFormat, 0, len(c.Formats))
	for i := range c.Formats {
		if lf := c.Formats[i].LineFormat(); lf != nil {
			formats = append(formats, lf)
		}
	}
	return formats
}
