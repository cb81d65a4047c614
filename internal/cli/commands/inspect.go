package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/graup/kakaotalk-analyzer/pkg/config"
	"github.com/graup/kakaotalk-analyzer/pkg/detector"
	"github.com/graup/kakaotalk-analyzer/pkg/export"
)

// InspectOptions holds command-line options for the inspect command.
type InspectOptions struct {
	ConfigPath string
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <export-file>",
		Short: "Show an overview of an export",
		Long: `Read an export end to end and print an overview: the parts that were
discovered, the detected layout, message and sender counts, and the
date span of the conversation.

Useful to sanity-check an export before running statistics on it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file with custom layouts")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts *InspectOptions) error {
	exportFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	parts, err := export.DiscoverParts(exportFile)
	if err != nil {
		return err
	}

	if _, err := os.Stat(parts[0]); err != nil {
		return fmt.Errorf("export file not found: %s", exportFile)
	}

	formats := append(cfg.LineFormats(), export.DefaultFormats()...)
	detection, err := detector.New(detector.WithFormats(formats)).DetectFromFile(ctx, parts[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", parts[0], err)
	}
	if !detection.HasMatch() {
		return &export.ParseError{Line: detection.FirstLine, Source: parts[0], LineNum: 1}
	}
	best := detection.BestMatch()

	fmt.Fprintln(w, "=== Export Overview ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Parts: %d\n", len(parts))
	for _, p := range parts {
		fmt.Fprintf(w, "  - %s\n", p)
	}
	fmt.Fprintf(w, "Layout: %s (%.1f%% confidence)\n", best.Format.Name, best.Confidence*100)
	fmt.Fprintln(w)

	source := export.NewFileSource(parts, best.Format)
	defer source.Close()

	var (
		first, last *export.Message
		count       int
		senders     = make(map[string]int)
	)

	for {
		msg, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if first == nil {
			first = msg
		}
		last = msg
		count++
		senders[msg.Sender]++
	}

	fmt.Fprintf(w, "Messages: %d\n", count)
	fmt.Fprintf(w, "Senders:  %d\n", len(senders))
	if first != nil {
		fmt.Fprintf(w, "Span:     %s - %s\n",
			first.Timestamp.Format("2006-01-02 15:04"),
			last.Timestamp.Format("2006-01-02 15:04"))
	}

	if len(senders) > 0 {
		names := make([]string, 0, len(senders))
		for n := range senders {
			names = append(names, n)
		}
		sort.Slice(names, func(i, j int) bool {
			if senders[names[i]] != senders[names[j]] {
				return senders[names[i]] > senders[names[j]]
			}
			return names[i] < names[j]
		})

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Messages per sender:")
		for _, n := range names {
			fmt.Fprintf(w, "  %s: %d\n", n, senders[n])
		}
	}

	return nil
}
