// Package detector provides automatic export layout detection for chat files.
package detector

import (
	"bufio"
	"context"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/graup/kakaotalk-analyzer/pkg/export"
)

// DetectionResult holds the result of analyzing an export file.
type DetectionResult struct {
	Matches      []FormatMatch // Layouts that matched, sorted by confidence descending
	SampledLines int           // Number of lines sampled
	ParsedLines  int           // Number of lines matched by the best layout
	FirstLine    string        // First content line of the file
}

// FormatMatch represents a layout that matched with its confidence score.
type FormatMatch struct {
	Format     *export.LineFormat
	Confidence float64   // 0.0 to 1.0 (fraction of sampled lines matched)
	MatchCount int       // Number of lines that matched
	SampleLine string    // Example message line that matched
	ParsedTime time.Time // Parsed timestamp from sample
	Sender     string    // Parsed sender from sample
}

// Detector analyzes export files to identify their line layout.
type Detector struct {
	formats    []*export.LineFormat
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithFormats replaces the layout registry (default export.DefaultFormats).
func WithFormats(formats []*export.LineFormat) Option {
	return func(d *Detector) {
		if len(formats) > 0 {
			d.formats = formats
		}
	}
}

// New creates a new Detector with the built-in layouts.
func New(opts ...Option) *Detector {
	d := &Detector{
		formats:    export.DefaultFormats(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile analyzes an export file and returns detected layouts.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes a slice of export lines.
// Continuation lines count against confidence, which is expected: a layout
// that matches more of the file is still the better pick.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{
		SampledLines: len(lines),
	}

	if len(lines) == 0 {
		return result
	}
	result.FirstLine = lines[0]

	type formatStats struct {
		format     *export.LineFormat
		matchCount int
		sampleLine string
		parsedTime time.Time
		sender     string
	}

	stats := make(map[string]*formatStats)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		for _, format := range d.formats {
			ts, sender, _, ok := format.ParseMessage(line)
			isDivider := !ok && format.IsDateDivider(line)
			if !ok && !isDivider {
				continue
			}

			key := format.Name
			if stats[key] == nil {
				stats[key] = &formatStats{format: format}
			}
			s := stats[key]
			s.matchCount++
			if ok && s.sampleLine == "" {
				s.sampleLine = line
				s.parsedTime = ts
				s.sender = sender
			}
		}
	}

	for _, s := range stats {
		// A layout that only ever matched day dividers is no use.
		if s.sampleLine == "" {
			continue
		}
		result.Matches = append(result.Matches, FormatMatch{
			Format:     s.format,
			Confidence: float64(s.matchCount) / float64(len(lines)),
			MatchCount: s.matchCount,
			SampleLine: s.sampleLine,
			ParsedTime: s.parsedTime,
			Sender:     s.sender,
		})
	}

	// Sort by confidence descending, then by pattern length (more specific first)
	sort.Slice(result.Matches, func(i, j int) bool {
		if result.Matches[i].Confidence != result.Matches[j].Confidence {
			return result.Matches[i].Confidence > result.Matches[j].Confidence
		}
		return len(result.Matches[i].Format.PatternStr) > len(result.Matches[j].Format.PatternStr)
	})

	if len(result.Matches) > 0 {
		result.ParsedLines = result.Matches[0].MatchCount
	}

	return result
}

// sampleFile reads up to sampleSize content lines from a file.
// Uses simple head sampling for efficiency.
func (d *Detector) sampleFile(_ context.Context, path string) ([]string, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for scanner.Scan() && len(lines) < d.sampleSize {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimRight(line, "\r"))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one layout matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
