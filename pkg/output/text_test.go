package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/graup/kakaotalk-analyzer/pkg/stats"
)

func statResult() *stats.Result {
	return &stats.Result{
		Action: stats.ActionStat,
		Period: stats.PeriodDay,
		Senders: []stats.SenderTally{
			{Sender: "Alice", Messages: 3, Words: 7},
			{Sender: "Bob", Messages: 2, Words: 4},
		},
		TopDays: []stats.Bucket{
			{Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Count: 2},
		},
		Metadata: stats.Metadata{
			Sources:           []string{"chat.txt"},
			MessagesProcessed: 5,
			First:             time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			Last:              time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC),
			StartTime:         time.Now(),
			EndTime:           time.Now(),
		},
	}
}

func TestTextFormatter_Stat(t *testing.T) {
	report := NewReport(statResult(), "chat.txt")

	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Counts per sender:",
		"Alice: 3 messages, 7 words, 2.33 words/message",
		"Bob: 2 messages, 4 words, 2.00 words/message",
		"Most active days:",
		"2024-01-15: 2 messages",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestTextFormatter_Data(t *testing.T) {
	result := &stats.Result{
		Action: stats.ActionData,
		Period: stats.PeriodDay,
		Series: []stats.Bucket{
			{Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Count: 2},
			{Date: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), Count: 0},
			{Date: time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC), Count: 1},
		},
	}
	report := NewReport(result, "chat.txt")

	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "2024-01-15: 2\n2024-01-16: 0\n2024-01-17: 1\n"
	if buf.String() != want {
		t.Errorf("Output = %q, want %q", buf.String(), want)
	}
}

func TestTextFormatter_DataMonthLayout(t *testing.T) {
	result := &stats.Result{
		Action: stats.ActionData,
		Period: stats.PeriodMonth,
		Series: []stats.Bucket{
			{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Count: 10},
		},
	}
	report := NewReport(result, "chat.txt")

	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.Contains(buf.String(), "2024-01: 10") {
		t.Errorf("Output = %q, want month-level labels", buf.String())
	}
}

func TestTextFormatter_Quiet(t *testing.T) {
	report := NewReport(statResult(), "chat.txt")

	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{Quiet: true})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "5 messages") {
		t.Errorf("Quiet output missing message count: %q", out)
	}
	if strings.Contains(out, "Counts per sender") {
		t.Errorf("Quiet output should not contain details: %q", out)
	}
}

func TestTextFormatter_Verbose(t *testing.T) {
	report := NewReport(statResult(), "chat.txt")

	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{Verbose: true})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Messages processed: 5") {
		t.Errorf("Verbose output missing processing stats: %q", out)
	}
	if !strings.Contains(out, "source: chat.txt") {
		t.Errorf("Verbose output missing sources: %q", out)
	}
}

func TestTextFormatter_Words(t *testing.T) {
	result := &stats.Result{
		Action: stats.ActionWords,
		Period: stats.PeriodDay,
		Words: []stats.WordCount{
			{Word: "go", Count: 4},
			{Word: "home", Count: 3},
		},
	}
	report := NewReport(result, "chat.txt")

	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "go: 4") || !strings.Contains(out, "home: 3") {
		t.Errorf("Output = %q", out)
	}
}

func TestTextFormatter_Name(t *testing.T) {
	if got := NewTextFormatter(FormatOptions{}).Name(); got != "text" {
		t.Errorf("Name() = %q, want text", got)
	}
}
