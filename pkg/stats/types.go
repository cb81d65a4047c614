// Package stats provides aggregation engines for chat message statistics.
package stats

import (
	"fmt"
	"strings"
	"time"
)

// Action enumerates the supported statistics.
type Action string

const (
	// ActionStat reports per-sender totals and the most active days.
	ActionStat Action = "stat"

	// ActionData reports message counts per period bucket.
	ActionData Action = "data"

	// ActionPlot reports the same series as ActionData, rendered as a chart.
	ActionPlot Action = "plot"

	// ActionHours reports a histogram of messages by hour of day.
	ActionHours Action = "hours"

	// ActionWords reports the most frequent words.
	ActionWords Action = "words"
)

// Actions returns all supported actions in display order.
func Actions() []Action {
	return []Action{ActionStat, ActionData, ActionPlot, ActionHours, ActionWords}
}

// ParseAction validates an action name.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions() {
		if string(a) == s {
			return a, nil
		}
	}
	return "", &UnknownActionError{Action: s, Available: Actions()}
}

// UnknownActionError indicates an unrecognized action name.
type UnknownActionError struct {
	// Action is the rejected name.
	Action string

	// Available lists the valid actions.
	Available []Action
}

func (e *UnknownActionError) Error() string {
	names := make([]string, len(e.Available))
	for i, a := range e.Available {
		names[i] = string(a)
	}
	return fmt.Sprintf("unknown action %q (valid actions: %s)", e.Action, strings.Join(names, ", "))
}

// TimeRange defines a time window for filtering messages.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the range (inclusive).
func (r *TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// SenderTally holds per-sender totals.
type SenderTally struct {
	Sender   string `json:"sender"`
	Messages int    `json:"messages"`
	Words    int    `json:"words"`
}

// WordsPerMessage returns the average word count per message.
func (t *SenderTally) WordsPerMessage() float64 {
	if t.Messages == 0 {
		return 0
	}
	return float64(t.Words) / float64(t.Messages)
}

// Bucket is one period bucket of the activity series.
type Bucket struct {
	// Date identifies the bucket (midnight of the day, the Monday of the
	// week, or the first of the month, depending on the period).
	Date time.Time `json:"date"`

	// Count is the number of messages in the bucket.
	Count int `json:"count"`

	// Trend is the trailing moving average of Count.
	Trend float64 `json:"trend"`
}

// WordCount is one entry of the word frequency table.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Result contains the complete output of one analysis run.
type Result struct {
	// Action is the statistic that was computed.
	Action Action `json:"action"`

	// Period is the bucket granularity used for series-based actions.
	Period Period `json:"period"`

	// Senders holds per-sender totals (stat action), sorted by message
	// count descending.
	Senders []SenderTally `json:"senders,omitempty"`

	// TopDays holds the most active days (stat action).
	TopDays []Bucket `json:"top_days,omitempty"`

	// Series holds gap-filled per-period counts (data and plot actions).
	Series []Bucket `json:"series,omitempty"`

	// Hours holds message counts by hour of day (hours action).
	Hours []int `json:"hours,omitempty"`

	// Words holds the top word frequencies (words action).
	Words []WordCount `json:"words,omitempty"`

	// Metadata provides context about the analysis run.
	Metadata Metadata `json:"metadata"`
}

// Metadata provides context about an analysis run.
type Metadata struct {
	// Sources lists the export files that were read.
	Sources []string `json:"sources"`

	// MessagesProcessed is the number of messages aggregated after
	// filtering.
	MessagesProcessed int `json:"messages_processed"`

	// First and Last bound the timestamps of the processed messages.
	First time.Time `json:"first,omitempty"`
	Last  time.Time `json:"last,omitempty"`

	// TimeRange is the time filter applied, if any.
	TimeRange *TimeRange `json:"time_range,omitempty"`

	// StartTime is when analysis began.
	StartTime time.Time `json:"-"`

	// EndTime is when analysis completed.
	EndTime time.Time `json:"-"`
}

// TotalCount sums the counts of the computed statistic. With no time filter
// this equals the number of processed messages for count-based actions.
func (r *Result) TotalCount() int {
	total := 0
	switch r.Action {
	case ActionStat:
		for _, s := range r.Senders {
			total += s.Messages
		}
	case ActionData, ActionPlot:
		for _, b := range r.Series {
			total += b.Count
		}
	case ActionHours:
		for _, c := range r.Hours {
			total += c
		}
	case ActionWords:
		for _, w := range r.Words {
			total += w.Count
		}
	}
	return total
}
