package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graup/kakaotalk-analyzer/pkg/config"
	"github.com/graup/kakaotalk-analyzer/pkg/detector"
	"github.com/graup/kakaotalk-analyzer/pkg/export"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output     string
	SampleSize int
	ShowAll    bool
	ConfigPath string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <export-file>",
		Short: "Detect the line layout of an export file",
		Long: `Analyze an export file to automatically detect its line layout.

Samples lines from the file and tests against known chat export layouts.
Reports the detected layout with a confidence score. Custom layouts from
the config file are tried as well.

Example:
  ktalk detect chat.txt
  ktalk detect --sample 500 chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all matching layouts, not just the best match")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file with custom layouts")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	exportFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(exportFile); os.IsNotExist(err) {
		return fmt.Errorf("export file not found: %s", exportFile)
	}

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	formats := append(cfg.LineFormats(), export.DefaultFormats()...)
	d := detector.New(
		detector.WithFormats(formats),
		detector.WithSampleSize(opts.SampleSize),
	)

	result, err := d.DetectFromFile(ctx, exportFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(cmd, result, exportFile, opts)
	default:
		return outputDetectText(cmd, result, exportFile, opts)
	}
}

func outputDetectText(cmd *cobra.Command, result *detector.DetectionResult, exportFile string, opts *DetectOptions) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "=== Export Layout Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", exportFile)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(w, "Lines matched: %d\n", result.ParsedLines)
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No known export layout matched.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: define a custom layout in the config file:")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "formats:")
		fmt.Fprintln(w, "  - name: my-export")
		fmt.Fprintln(w, "    pattern: '^(<timestamp>), (<sender>) : (<text>)$'")
		fmt.Fprintln(w, "    layout: \"2006-01-02 15:04\"")
		return nil
	}

	best := result.BestMatch()
	fmt.Fprintf(w, "Detected layout: %s\n", best.Format.Name)
	fmt.Fprintf(w, "Confidence: %.1f%% (%d/%d lines matched)\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sample match:\n  %s\n", best.SampleLine)
	fmt.Fprintf(w, "Parsed as: %s from %s\n",
		best.ParsedTime.Format("2006-01-02 15:04:05"), best.Sender)

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "--- Alternative layouts ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% confidence)\n", i+2, m.Format.Name, m.Confidence*100)
		}
	}

	return nil
}

// JSONMatch represents a layout match in JSON output.
type JSONMatch struct {
	Name       string  `json:"name"`
	Pattern    string  `json:"pattern"`
	Layout     string  `json:"layout"`
	Confidence float64 `json:"confidence"`
	MatchCount int     `json:"match_count"`
	SampleLine string  `json:"sample_line"`
}

// JSONOutput represents the full detect JSON output.
type JSONOutput struct {
	File         string      `json:"file"`
	Matches      []JSONMatch `json:"matches"`
	SampledLines int         `json:"sampled_lines"`
	ParsedLines  int         `json:"parsed_lines"`
}

func outputDetectJSON(cmd *cobra.Command, result *detector.DetectionResult, exportFile string, opts *DetectOptions) error {
	out := JSONOutput{
		File:         exportFile,
		SampledLines: result.SampledLines,
		ParsedLines:  result.ParsedLines,
		Matches:      make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1] // Only show best match
	}

	for _, m := range matches {
		out.Matches = append(out.Matches, JSONMatch{
			Name:       m.Format.Name,
			Pattern:    m.Format.PatternStr,
			Layout:     m.Format.Layout,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
		})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
