package stats

import (
	"context"
	"sort"
	"time"

	"github.com/graup/kakaotalk-analyzer/pkg/export"
)

// statEngine computes per-sender totals and the most active days.
type statEngine struct {
	topN    int
	senders map[string]*SenderTally
	days    map[time.Time]int
}

func newStatEngine(topN int) *statEngine {
	e := &statEngine{topN: topN}
	e.Reset()
	return e
}

func (e *statEngine) Name() string {
	return string(ActionStat)
}

func (e *statEngine) Process(_ context.Context, msg *export.Message) error {
	tally := e.senders[msg.Sender]
	if tally == nil {
		tally = &SenderTally{Sender: msg.Sender}
		e.senders[msg.Sender] = tally
	}
	tally.Messages++
	tally.Words += CountWords(msg.Text)

	e.days[PeriodDay.Truncate(msg.Timestamp)]++
	return nil
}

func (e *statEngine) Finalize(_ context.Context, result *Result) error {
	senders := make([]SenderTally, 0, len(e.senders))
	for _, t := range e.senders {
		senders = append(senders, *t)
	}
	sort.Slice(senders, func(i, j int) bool {
		if senders[i].Messages != senders[j].Messages {
			return senders[i].Messages > senders[j].Messages
		}
		return senders[i].Sender < senders[j].Sender
	})
	result.Senders = senders

	days := make([]Bucket, 0, len(e.days))
	for d, c := range e.days {
		days = append(days, Bucket{Date: d, Count: c})
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].Count != days[j].Count {
			return days[i].Count > days[j].Count
		}
		return days[i].Date.Before(days[j].Date)
	})
	if e.topN > 0 && len(days) > e.topN {
		days = days[:e.topN]
	}
	result.TopDays = days
	return nil
}

func (e *statEngine) Reset() {
	e.senders = make(map[string]*SenderTally)
	e.days = make(map[time.Time]int)
}
