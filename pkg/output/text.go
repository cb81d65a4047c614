package output

import (
	"context"
	"fmt"
	"io"

	"github.com/graup/kakaotalk-analyzer/pkg/stats"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	md := report.Result.Metadata
	fmt.Fprintf(w, "ktalk: %d messages", report.Summary.Messages)
	if report.Summary.Messages > 0 {
		fmt.Fprintf(w, " (%s - %s)",
			md.First.Format("2006-01-02"),
			md.Last.Format("2006-01-02"))
	}
	fmt.Fprintln(w)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	result := report.Result

	switch result.Action {
	case stats.ActionStat:
		f.formatStat(result, w)
	case stats.ActionData:
		f.formatData(result, w)
	case stats.ActionPlot:
		fmt.Fprintf(w, "Messages per %s:\n\n", result.Period)
		renderChart(w, seriesRows(result.Series, result.Period), f.opts.Width, true)
	case stats.ActionHours:
		fmt.Fprintln(w, "Messages per hour of day:")
		fmt.Fprintln(w)
		renderChart(w, hourRows(result.Hours), f.opts.Width, false)
	case stats.ActionWords:
		f.formatWords(result, w)
	}

	if f.opts.Verbose {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Messages processed: %d\n", result.Metadata.MessagesProcessed)
		for _, s := range result.Metadata.Sources {
			fmt.Fprintf(w, "  source: %s\n", s)
		}
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

func (f *TextFormatter) formatStat(result *stats.Result, w io.Writer) {
	fmt.Fprintln(w, "Counts per sender:")
	for _, s := range result.Senders {
		fmt.Fprintf(w, "  %s: %d messages, %d words, %.2f words/message\n",
			s.Sender, s.Messages, s.Words, s.WordsPerMessage())
	}

	if len(result.TopDays) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Most active days:")
		for _, d := range result.TopDays {
			fmt.Fprintf(w, "  %s: %d messages\n", d.Date.Format("2006-01-02"), d.Count)
		}
	}
}

func (f *TextFormatter) formatData(result *stats.Result, w io.Writer) {
	layout := "2006-01-02"
	if result.Period == stats.PeriodMonth {
		layout = "2006-01"
	}
	for _, b := range result.Series {
		fmt.Fprintf(w, "%s: %d\n", b.Date.Format(layout), b.Count)
	}
}

func (f *TextFormatter) formatWords(result *stats.Result, w io.Writer) {
	fmt.Fprintln(w, "Most frequent words:")
	for _, wc := range result.Words {
		fmt.Fprintf(w, "  %s: %d\n", wc.Word, wc.Count)
	}
}
