package stats

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/graup/kakaotalk-analyzer/pkg/export"
)

// DefaultTopN bounds ranked listings (most active days, top words).
const DefaultTopN = 10

// Analyzer runs one aggregation engine over a message stream.
type Analyzer struct {
	action Action
	engine Aggregator

	// Options
	period    Period
	timeRange *TimeRange
	topN      int
}

// Option configures analyzer behavior.
type Option func(*Analyzer)

// WithPeriod sets the bucket granularity for series-based actions.
func WithPeriod(p Period) Option {
	return func(a *Analyzer) {
		a.period = p
	}
}

// WithTimeRange limits analysis to messages within the given time range.
func WithTimeRange(start, end time.Time) Option {
	return func(a *Analyzer) {
		a.timeRange = &TimeRange{Start: start, End: end}
	}
}

// WithTopN bounds ranked listings.
func WithTopN(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.topN = n
		}
	}
}

// NewAnalyzer creates an analyzer for the given action.
// Returns UnknownActionError for unrecognized actions.
func NewAnalyzer(action Action, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		action: action,
		period: PeriodDay,
		topN:   DefaultTopN,
	}

	for _, opt := range opts {
		opt(a)
	}

	engine, err := a.createAggregator()
	if err != nil {
		return nil, err
	}
	a.engine = engine

	return a, nil
}

// createAggregator creates the engine matching the analyzer's action.
func (a *Analyzer) createAggregator() (Aggregator, error) {
	switch a.action {
	case ActionStat:
		return newStatEngine(a.topN), nil
	case ActionData, ActionPlot:
		return newSeriesEngine(a.period), nil
	case ActionHours:
		return newHoursEngine(), nil
	case ActionWords:
		return newWordsEngine(a.topN), nil
	default:
		return nil, &UnknownActionError{Action: string(a.action), Available: Actions()}
	}
}

// Analyze consumes the message source and returns the computed statistic.
func (a *Analyzer) Analyze(ctx context.Context, source export.MessageSource) (*Result, error) {
	result := &Result{
		Action: a.action,
		Period: a.period,
		Metadata: Metadata{
			TimeRange: a.timeRange,
			StartTime: time.Now(),
		},
	}

	a.engine.Reset()

	sourcesSeen := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msg, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading messages: %w", err)
		}

		if !sourcesSeen[msg.Source] {
			sourcesSeen[msg.Source] = true
			result.Metadata.Sources = append(result.Metadata.Sources, msg.Source)
		}

		if a.timeRange != nil && !a.timeRange.Contains(msg.Timestamp) {
			continue
		}

		result.Metadata.MessagesProcessed++
		if result.Metadata.First.IsZero() || msg.Timestamp.Before(result.Metadata.First) {
			result.Metadata.First = msg.Timestamp
		}
		if msg.Timestamp.After(result.Metadata.Last) {
			result.Metadata.Last = msg.Timestamp
		}

		if err := a.engine.Process(ctx, msg); err != nil {
			return nil, fmt.Errorf("aggregating %s: %w", a.engine.Name(), err)
		}
	}

	if err := a.engine.Finalize(ctx, result); err != nil {
		return nil, fmt.Errorf("finalizing %s: %w", a.engine.Name(), err)
	}

	result.Metadata.EndTime = time.Now()

	return result, nil
}
