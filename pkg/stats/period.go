package stats

import (
	"fmt"
	"strings"
	"time"
)

// Period is the bucket granularity for series-based actions.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Periods returns all supported periods in display order.
func Periods() []Period {
	return []Period{PeriodDay, PeriodWeek, PeriodMonth}
}

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods() {
		if string(p) == s {
			return p, nil
		}
	}
	names := make([]string, 0, len(Periods()))
	for _, p := range Periods() {
		names = append(names, string(p))
	}
	return "", fmt.Errorf("unknown period %q (valid periods: %s)", s, strings.Join(names, ", "))
}

// Truncate maps a timestamp to its bucket date: midnight of the same day,
// the Monday of the same week, or the first of the same month.
func (p Period) Truncate(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch p {
	case PeriodWeek:
		wd := int(d.Weekday())
		if wd == 0 {
			wd = 7 // Sunday belongs to the preceding Monday
		}
		return d.AddDate(0, 0, 1-wd)
	case PeriodMonth:
		return d.AddDate(0, 0, 1-d.Day())
	default:
		return d
	}
}

// Next returns the bucket date following t.
func (p Period) Next(t time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return t.AddDate(0, 0, 7)
	case PeriodMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// TrendWindow is the moving-average window used when charting this period.
func (p Period) TrendWindow() int {
	switch p {
	case PeriodDay:
		return 20
	case PeriodWeek:
		return 5
	default:
		return 3
	}
}
