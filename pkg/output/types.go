// Package output provides formatting and rendering of analysis results.
package output

import (
	"time"

	"github.com/graup/kakaotalk-analyzer/pkg/stats"
)

// Report is the complete analysis output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Result is the computed statistic.
	Result *stats.Result `json:"result"`

	// Metadata provides context about the analysis.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// Action is the statistic that was computed.
	Action string `json:"action"`

	// Period is the bucket granularity used.
	Period string `json:"period"`

	// Messages is the number of messages aggregated.
	Messages int `json:"messages"`

	// Senders is the number of distinct senders seen (stat action only).
	Senders int `json:"senders,omitempty"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// ExportFile is the path of the first export part as given by the user.
	ExportFile string `json:"export_file"`

	// Sources lists all export parts that were read.
	Sources []string `json:"sources"`

	// TimeRange is the time filter that was applied, if any.
	TimeRange *stats.TimeRange `json:"time_range,omitempty"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration_ns"`
}

// NewReport creates a Report from an analysis result.
func NewReport(result *stats.Result, exportFile string) *Report {
	return &Report{
		Result: result,
		Summary: Summary{
			Action:   string(result.Action),
			Period:   string(result.Period),
			Messages: result.Metadata.MessagesProcessed,
			Senders:  len(result.Senders),
		},
		Metadata: Metadata{
			ExportFile: exportFile,
			Sources:    result.Metadata.Sources,
			TimeRange:  result.Metadata.TimeRange,
			AnalyzedAt: result.Metadata.EndTime,
			Duration:   result.Metadata.EndTime.Sub(result.Metadata.StartTime),
		},
	}
}
