package stats

import (
	"context"

	"github.com/graup/kakaotalk-analyzer/pkg/export"
)

// hoursEngine counts messages by hour of day.
type hoursEngine struct {
	counts [24]int
}

func newHoursEngine() *hoursEngine {
	return &hoursEngine{}
}

func (e *hoursEngine) Name() string {
	return string(ActionHours)
}

func (e *hoursEngine) Process(_ context.Context, msg *export.Message) error {
	e.counts[msg.Timestamp.Hour()]++
	return nil
}

func (e *hoursEngine) Finalize(_ context.Context, result *Result) error {
	result.Hours = make([]int, 24)
	copy(result.Hours, e.counts[:])
	return nil
}

func (e *hoursEngine) Reset() {
	e.counts = [24]int{}
}
