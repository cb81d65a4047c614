package stats

import (
	"context"
	"sort"
	"time"

	"github.com/graup/kakaotalk-analyzer/pkg/export"
)

// seriesEngine counts messages per period bucket.
// Used by both the data and plot actions.
type seriesEngine struct {
	period Period
	counts map[time.Time]int
}

func newSeriesEngine(period Period) *seriesEngine {
	return &seriesEngine{
		period: period,
		counts: make(map[time.Time]int),
	}
}

func (e *seriesEngine) Name() string {
	return string(ActionData)
}

func (e *seriesEngine) Process(_ context.Context, msg *export.Message) error {
	e.counts[e.period.Truncate(msg.Timestamp)]++
	return nil
}

func (e *seriesEngine) Finalize(_ context.Context, result *Result) error {
	if len(e.counts) == 0 {
		return nil
	}

	dates := make([]time.Time, 0, len(e.counts))
	for d := range e.counts {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	// Fill in missing (count=0) buckets so the series is contiguous.
	var series []Bucket
	for i, d := range dates {
		if i > 0 {
			for fill := e.period.Next(dates[i-1]); fill.Before(d); fill = e.period.Next(fill) {
				series = append(series, Bucket{Date: fill})
			}
		}
		series = append(series, Bucket{Date: d, Count: e.counts[d]})
	}

	fillTrend(series, e.period.TrendWindow())
	result.Series = series
	return nil
}

func (e *seriesEngine) Reset() {
	e.counts = make(map[time.Time]int)
}

// fillTrend computes a trailing moving average of the bucket counts.
// Early buckets average over however many values exist so far.
func fillTrend(series []Bucket, window int) {
	if window < 1 {
		window = 1
	}
	sum := 0
	for i := range series {
		sum += series[i].Count
		if i >= window {
			sum -= series[i-window].Count
		}
		n := i + 1
		if n > window {
			n = window
		}
		series[i].Trend = float64(sum) / float64(n)
	}
}
