package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/graup/kakaotalk-analyzer/pkg/stats"
)

const (
	defaultChartWidth = 80
	minBarWidth       = 10
)

var (
	styleBar   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // bright blue
	styleTrend = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // gray
	styleLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// chartRow is one labeled value of a bar chart.
type chartRow struct {
	label string
	count int
	trend float64
}

// renderChart writes a horizontal bar chart. Bars are scaled to the space
// left after the widest label and the count column.
func renderChart(w io.Writer, rows []chartRow, width int, showTrend bool) {
	if len(rows) == 0 {
		return
	}
	if width <= 0 {
		width = defaultChartWidth
	}

	labelWidth := 0
	maxCount := 0
	for _, r := range rows {
		if lw := runewidth.StringWidth(r.label); lw > labelWidth {
			labelWidth = lw
		}
		if r.count > maxCount {
			maxCount = r.count
		}
	}

	countWidth := len(fmt.Sprintf("%d", maxCount))
	barWidth := width - labelWidth - countWidth - 4 // separators and padding
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	for _, r := range rows {
		bar := ""
		if maxCount > 0 {
			n := r.count * barWidth / maxCount
			if r.count > 0 && n == 0 {
				n = 1
			}
			bar = strings.Repeat("█", n)
		}

		label := runewidth.FillRight(r.label, labelWidth)
		line := fmt.Sprintf("%s │%s %*d",
			styleLabel.Render(label),
			styleBar.Render(bar),
			countWidth, r.count)
		if showTrend {
			line += styleTrend.Render(fmt.Sprintf("  (avg %.1f)", r.trend))
		}
		fmt.Fprintln(w, line)
	}
}

// seriesRows converts a bucket series into chart rows.
func seriesRows(series []stats.Bucket, period stats.Period) []chartRow {
	layout := "2006-01-02"
	if period == stats.PeriodMonth {
		layout = "2006-01"
	}

	rows := make([]chartRow, len(series))
	for i, b := range series {
		rows[i] = chartRow{
			label: b.Date.Format(layout),
			count: b.Count,
			trend: b.Trend,
		}
	}
	return rows
}

// hourRows converts an hour-of-day histogram into chart rows.
func hourRows(hours []int) []chartRow {
	rows := make([]chartRow, len(hours))
	for h, c := range hours {
		rows[h] = chartRow{
			label: fmt.Sprintf("%02d:00", h),
			count: c,
		}
	}
	return rows
}
