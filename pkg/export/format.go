package export

import (
	"regexp"
	"strings"
	"time"
)

// LineFormat describes one known chat export layout.
type LineFormat struct {
	// Name is a human-readable name for the layout.
	Name string

	// Pattern matches a message line. It must capture three groups:
	// timestamp, sender, text.
	Pattern *regexp.Regexp

	// PatternStr is the pattern source, kept for config output.
	PatternStr string

	// Layout is the Go time layout for parsing the captured timestamp.
	Layout string

	// DatePattern matches a day-divider line (a line carrying only a date).
	// Day dividers are skipped during parsing. Optional.
	DatePattern *regexp.Regexp

	// DatePatternStr is the day-divider pattern source.
	DatePatternStr string

	// DateLayout is the Go time layout for the day-divider date.
	DateLayout string

	// Examples are sample message lines in this layout.
	Examples []string
}

// ParseMessage attempts to parse line as a message in this layout.
// Returns the timestamp, sender and text on success.
func (f *LineFormat) ParseMessage(line string) (time.Time, string, string, bool) {
	matches := f.Pattern.FindStringSubmatch(line)
	if len(matches) < 4 {
		return time.Time{}, "", "", false
	}

	ts, err := time.Parse(f.Layout, matches[1])
	if err != nil {
		return time.Time{}, "", "", false
	}

	return ts, strings.TrimSpace(matches[2]), matches[3], true
}

// IsDateDivider reports whether line is a day-divider line in this layout.
func (f *LineFormat) IsDateDivider(line string) bool {
	if f.DatePattern == nil {
		return false
	}

	matches := f.DatePattern.FindStringSubmatch(line)
	if len(matches) < 2 {
		return false
	}

	_, err := time.Parse(f.DateLayout, matches[1])
	return err == nil
}

// Matches reports whether line is either a message or a day divider.
func (f *LineFormat) Matches(line string) bool {
	if _, _, _, ok := f.ParseMessage(line); ok {
		return true
	}
	return f.IsDateDivider(line)
}

// DefaultFormats returns the built-in export layouts.
// Layouts are ordered roughly by specificity (more specific patterns first).
func DefaultFormats() []*LineFormat {
	formats := []*LineFormat{
		// 2024-01-15 10:30:00, Sender : text
		{
			Name:           "Datetime with seconds",
			PatternStr:     `^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}), (.+?) : (.*)$`,
			Layout:         "2006-01-02 15:04:05",
			DatePatternStr: `^(\d{4}-\d{2}-\d{2})$`,
			DateLayout:     "2006-01-02",
			Examples:       []string{"2024-01-15 10:30:00, Alice : hello"},
		},
		// 2024-01-15 10:30, Sender : text
		{
			Name:           "Datetime",
			PatternStr:     `^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}), (.+?) : (.*)$`,
			Layout:         "2006-01-02 15:04",
			DatePatternStr: `^(\d{4}-\d{2}-\d{2})$`,
			DateLayout:     "2006-01-02",
			Examples:       []string{"2024-01-15 10:30, Alice : hello"},
		},
		// 2024/01/15 10:30, Sender : text
		{
			Name:           "Slash datetime",
			PatternStr:     `^(\d{4}/\d{2}/\d{2} \d{2}:\d{2}), (.+?) : (.*)$`,
			Layout:         "2006/01/02 15:04",
			DatePatternStr: `^(\d{4}/\d{2}/\d{2})$`,
			DateLayout:     "2006/01/02",
			Examples:       []string{"2024/01/15 10:30, Alice : hello"},
		},
		// 2024. 1. 15. 22:30, Sender : text (desktop export)
		{
			Name:           "Dotted datetime",
			PatternStr:     `^(\d{4}\. \d{1,2}\. \d{1,2}\. \d{1,2}:\d{2}), (.+?) : (.*)$`,
			Layout:         "2006. 1. 2. 15:04",
			DatePatternStr: `^(\d{4}\. \d{1,2}\. \d{1,2})\.?$`,
			DateLayout:     "2006. 1. 2",
			Examples:       []string{"2024. 1. 15. 22:30, Alice : hello"},
		},
		// January 15, 2024, 10:30 PM, Sender : text (mobile export)
		{
			Name:           "12-hour with full month",
			PatternStr:     `^([A-Z][a-z]+ \d{1,2}, \d{4}, \d{1,2}:\d{2} [AP]M), (.+?) : (.*)$`,
			Layout:         "January 2, 2006, 3:04 PM",
			DatePatternStr: `^([A-Z][a-z]+ \d{1,2}, \d{4})$`,
			DateLayout:     "January 2, 2006",
			Examples:       []string{"January 15, 2024, 10:30 PM, Alice : hello"},
		},
		// Jan 15, 2024, 10:30 PM, Sender : text
		{
			Name:           "12-hour with abbreviated month",
			PatternStr:     `^([A-Z][a-z]{2} \d{1,2}, \d{4}, \d{1,2}:\d{2} [AP]M), (.+?) : (.*)$`,
			Layout:         "Jan 2, 2006, 3:04 PM",
			DatePatternStr: `^([A-Z][a-z]{2} \d{1,2}, \d{4})$`,
			DateLayout:     "Jan 2, 2006",
			Examples:       []string{"Jan 15, 2024, 10:30 PM, Alice : hello"},
		},
	}

	for _, f := range formats {
		f.compile()
	}

	return formats
}

func (f *LineFormat) compile() {
	f.Pattern = regexp.MustCompile(f.PatternStr)
	if f.DatePatternStr != "" {
		f.DatePattern = regexp.MustCompile(f.DatePatternStr)
	}
}

// Compile compiles the pattern strings of a format built at runtime
// (e.g. from a config file). Returns an error for invalid patterns or
// patterns lacking the required capture groups.
func (f *LineFormat) Compile() error {
	re, err := regexp.Compile(f.PatternStr)
	if err != nil {
		return err
	}
	if re.NumSubexp() < 3 {
		return errMissingGroups
	}
	f.Pattern = re

	if f.DatePatternStr != "" {
		re, err = regexp.Compile(f.DatePatternStr)
		if err != nil {
			return err
		}
		if re.NumSubexp() < 1 {
			return errMissingDateGroup
		}
		f.DatePattern = re
	}

	return nil
}
