// Package cli provides the command-line interface for ktalk.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graup/kakaotalk-analyzer/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Argument, parse or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &commands.ReportOptions{}

	rootCmd := &cobra.Command{
		Use:   "ktalk <export-file> <action> [period]",
		Short: "Analyze chat export files",
		Long: `ktalk is a batch analysis tool for chat export files.

Point it at the first part of an export; sibling parts (chat-2.txt, ...)
are discovered automatically and read as one message stream.

Actions:
  stat     Per-sender message and word counts, plus the most active days
  data     Message counts per period bucket
  plot     Activity chart per period bucket, with a moving-average trend
  hours    Histogram of messages by hour of day
  words    Most frequent words

Periods (for data, plot): day (default), week, month

Exit codes:
  0 - Success
  2 - Argument, parse or runtime error`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunReport(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Flags
	rootCmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	rootCmd.Flags().StringVar(&opts.From, "from", "", "Only count messages at or after this time (2006-01-02 or RFC3339)")
	rootCmd.Flags().StringVar(&opts.To, "to", "", "Only count messages at or before this time (2006-01-02 or RFC3339)")
	rootCmd.Flags().IntVar(&opts.Top, "top", 0, "Number of entries in ranked listings (default 10)")
	rootCmd.Flags().IntVar(&opts.Width, "width", 0, "Chart width in columns (default: terminal width)")
	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default: ktalk.yaml, ~/.config/ktalk/config.yaml)")
	rootCmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show sources and timing details")
	rootCmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	// Add subcommands
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
