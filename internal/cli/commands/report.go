package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/graup/kakaotalk-analyzer/pkg/config"
	"github.com/graup/kakaotalk-analyzer/pkg/detector"
	"github.com/graup/kakaotalk-analyzer/pkg/export"
	"github.com/graup/kakaotalk-analyzer/pkg/output"
	"github.com/graup/kakaotalk-analyzer/pkg/stats"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ReportOptions holds command-line options for the root report command.
type ReportOptions struct {
	Output     string
	From       string
	To         string
	Top        int
	Width      int
	ConfigPath string
	Verbose    bool
	Quiet      bool
}

// RunReport parses an export and renders the requested statistic.
// Invoked by the root command with up to three positional arguments:
// export file, action, optional period.
func RunReport(cmd *cobra.Command, args []string, opts *ReportOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) < 2 {
		printUsage(cmd.OutOrStdout())
		ExitCode = 2
		return nil
	}

	exportPath := args[0]

	// Load configuration (missing default config is fine)
	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	action, err := stats.ParseAction(args[1])
	if err != nil {
		return err
	}

	periodName := cfg.DefaultPeriod
	if len(args) == 3 {
		periodName = args[2]
	}
	period, err := stats.ParsePeriod(periodName)
	if err != nil {
		return err
	}

	// Discover all parts of the export
	parts, err := export.DiscoverParts(exportPath)
	if err != nil {
		return err
	}

	if _, err := os.Stat(parts[0]); err != nil {
		return fmt.Errorf("export file not found: %s", exportPath)
	}

	// Detect the export layout from the first part. Custom layouts from
	// the config are tried before the built-in ones.
	formats := append(cfg.LineFormats(), export.DefaultFormats()...)
	d := detector.New(detector.WithFormats(formats))

	detection, err := d.DetectFromFile(ctx, parts[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", parts[0], err)
	}
	if !detection.HasMatch() {
		return &export.ParseError{Line: detection.FirstLine, Source: parts[0], LineNum: 1}
	}

	// Build analyzer options
	topN := opts.Top
	if topN == 0 {
		topN = cfg.TopN
	}
	analyzerOpts := []stats.Option{
		stats.WithPeriod(period),
		stats.WithTopN(topN),
	}

	if opts.From != "" || opts.To != "" {
		start, end, err := parseTimeRange(opts.From, opts.To)
		if err != nil {
			return err
		}
		analyzerOpts = append(analyzerOpts, stats.WithTimeRange(start, end))
	}

	analyzer, err := stats.NewAnalyzer(action, analyzerOpts...)
	if err != nil {
		return err
	}

	source := export.NewFileSource(parts, detection.BestMatch().Format)
	defer source.Close()

	result, err := analyzer.Analyze(ctx, source)
	if err != nil {
		return err
	}

	report := output.NewReport(result, exportPath)

	formatter, err := createFormatter(opts, chartWidth(opts, cfg))
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ktalk <export-file> <action> [period]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Actions:")
	fmt.Fprintln(w, "  stat     Per-sender message and word counts, plus the most active days")
	fmt.Fprintln(w, "  data     Message counts per period bucket")
	fmt.Fprintln(w, "  plot     Activity chart per period bucket")
	fmt.Fprintln(w, "  hours    Histogram of messages by hour of day")
	fmt.Fprintln(w, "  words    Most frequent words")
	fmt.Fprintln(w)
	periods := make([]string, 0, len(stats.Periods()))
	for _, p := range stats.Periods() {
		periods = append(periods, string(p))
	}
	fmt.Fprintf(w, "Periods: %s\n", strings.Join(periods, ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'ktalk --help' for flags and subcommands.")
}

func createFormatter(opts *ReportOptions, width int) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
		Width:   width,
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

// chartWidth resolves the chart width: flag, then config, then the
// terminal width when stdout is a terminal.
func chartWidth(opts *ReportOptions, cfg *config.Config) int {
	if opts.Width > 0 {
		return opts.Width
	}
	if cfg.ChartWidth > 0 {
		return cfg.ChartWidth
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 0 // formatter falls back to its default
}

// timeLayouts accepted by --from and --to.
var timeLayouts = []string{"2006-01-02", time.RFC3339}

func parseTimeRange(from, to string) (time.Time, time.Time, error) {
	start := time.Time{}
	end := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

	if from != "" {
		t, _, err := parseTimeArg(from)
		if err != nil {
			return start, end, fmt.Errorf("invalid --from %q: %w", from, err)
		}
		start = t
	}

	if to != "" {
		t, dateOnly, err := parseTimeArg(to)
		if err != nil {
			return start, end, fmt.Errorf("invalid --to %q: %w", to, err)
		}
		if dateOnly {
			// A bare date as upper bound includes the whole day.
			t = t.AddDate(0, 0, 1).Add(-time.Second)
		}
		end = t
	}

	if end.Before(start) {
		return start, end, fmt.Errorf("--to is before --from")
	}

	return start, end, nil
}

func parseTimeArg(s string) (time.Time, bool, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, layout == "2006-01-02", nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, false, lastErr
}
