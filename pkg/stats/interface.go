package stats

import (
	"context"

	"github.com/graup/kakaotalk-analyzer/pkg/export"
)

// Aggregator computes one statistic over a message stream.
// Each action implements this interface.
type Aggregator interface {
	// Name returns the action name for reporting.
	Name() string

	// Process handles a single message, updating internal state.
	Process(ctx context.Context, msg *export.Message) error

	// Finalize completes aggregation and fills the relevant Result fields.
	// Called after all messages have been processed.
	Finalize(ctx context.Context, result *Result) error

	// Reset clears internal state for reuse.
	Reset()
}
