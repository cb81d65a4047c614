package stats

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/graup/kakaotalk-analyzer/pkg/export"
)

// sliceSource is an in-memory MessageSource for tests.
type sliceSource struct {
	msgs []*export.Message
	pos  int
}

func (s *sliceSource) Next(_ context.Context) (*export.Message, error) {
	if s.pos >= len(s.msgs) {
		return nil, io.EOF
	}
	msg := s.msgs[s.pos]
	s.pos++
	return msg, nil
}

func (s *sliceSource) Close() error { return nil }

func msg(ts string, sender, text string) *export.Message {
	t, err := time.Parse("2006-01-02 15:04", ts)
	if err != nil {
		panic(err)
	}
	return &export.Message{Timestamp: t, Sender: sender, Text: text, Source: "chat.txt"}
}

func testMessages() []*export.Message {
	return []*export.Message{
		msg("2024-01-15 10:00", "Alice", "hello there"),
		msg("2024-01-15 14:30", "Bob", "hi"),
		msg("2024-01-16 09:00", "Alice", "one two three"),
		msg("2024-01-18 23:45", "Bob", "late night message"),
		msg("2024-02-02 10:00", "Alice", "new month"),
	}
}

func TestAnalyze_CountsSumToTotal(t *testing.T) {
	// With no time filter, every count-based action must account for
	// every message exactly once.
	actions := []Action{ActionStat, ActionData, ActionPlot, ActionHours}

	for _, action := range actions {
		t.Run(string(action), func(t *testing.T) {
			a, err := NewAnalyzer(action)
			if err != nil {
				t.Fatalf("NewAnalyzer() error = %v", err)
			}

			result, err := a.Analyze(context.Background(), &sliceSource{msgs: testMessages()})
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}

			total := result.TotalCount()
			if total != len(testMessages()) {
				t.Errorf("TotalCount() = %d, want %d", total, len(testMessages()))
			}
			if result.Metadata.MessagesProcessed != len(testMessages()) {
				t.Errorf("MessagesProcessed = %d, want %d",
					result.Metadata.MessagesProcessed, len(testMessages()))
			}
		})
	}
}

func TestAnalyze_Stat(t *testing.T) {
	a, err := NewAnalyzer(ActionStat)
	if err != nil {
		t.Fatal(err)
	}

	result, err := a.Analyze(context.Background(), &sliceSource{msgs: testMessages()})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(result.Senders) != 2 {
		t.Fatalf("Got %d senders, want 2", len(result.Senders))
	}

	// Alice has 3 messages, Bob 2: sorted descending.
	if result.Senders[0].Sender != "Alice" || result.Senders[0].Messages != 3 {
		t.Errorf("Senders[0] = %+v, want Alice with 3 messages", result.Senders[0])
	}
	if result.Senders[1].Sender != "Bob" || result.Senders[1].Messages != 2 {
		t.Errorf("Senders[1] = %+v, want Bob with 2 messages", result.Senders[1])
	}

	// "hello there" + "one two three" + "new month" = 7 words
	if result.Senders[0].Words != 7 {
		t.Errorf("Alice words = %d, want 7", result.Senders[0].Words)
	}

	if len(result.TopDays) == 0 {
		t.Fatal("Expected most active days")
	}
	wantDay := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !result.TopDays[0].Date.Equal(wantDay) || result.TopDays[0].Count != 2 {
		t.Errorf("TopDays[0] = %+v, want %s with 2", result.TopDays[0], wantDay)
	}
}

func TestAnalyze_DataFillsGaps(t *testing.T) {
	a, err := NewAnalyzer(ActionData, WithPeriod(PeriodDay))
	if err != nil {
		t.Fatal(err)
	}

	msgs := []*export.Message{
		msg("2024-01-15 10:00", "Alice", "a"),
		msg("2024-01-18 10:00", "Bob", "b"),
	}

	result, err := a.Analyze(context.Background(), &sliceSource{msgs: msgs})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	// Jan 15 through Jan 18 inclusive, with zero-count days filled in.
	if len(result.Series) != 4 {
		t.Fatalf("Got %d buckets, want 4: %+v", len(result.Series), result.Series)
	}
	wantCounts := []int{1, 0, 0, 1}
	for i, want := range wantCounts {
		if result.Series[i].Count != want {
			t.Errorf("Series[%d].Count = %d, want %d", i, result.Series[i].Count, want)
		}
	}
}

func TestAnalyze_WeekBuckets(t *testing.T) {
	a, err := NewAnalyzer(ActionData, WithPeriod(PeriodWeek))
	if err != nil {
		t.Fatal(err)
	}

	msgs := []*export.Message{
		msg("2024-01-15 10:00", "Alice", "a"), // Monday
		msg("2024-01-21 10:00", "Bob", "b"),   // Sunday, same week
		msg("2024-01-22 10:00", "Alice", "c"), // next Monday
	}

	result, err := a.Analyze(context.Background(), &sliceSource{msgs: msgs})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(result.Series) != 2 {
		t.Fatalf("Got %d buckets, want 2: %+v", len(result.Series), result.Series)
	}
	if result.Series[0].Count != 2 || result.Series[1].Count != 1 {
		t.Errorf("Counts = %d, %d, want 2, 1", result.Series[0].Count, result.Series[1].Count)
	}
}

func TestAnalyze_Hours(t *testing.T) {
	a, err := NewAnalyzer(ActionHours)
	if err != nil {
		t.Fatal(err)
	}

	result, err := a.Analyze(context.Background(), &sliceSource{msgs: testMessages()})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(result.Hours) != 24 {
		t.Fatalf("Got %d hour buckets, want 24", len(result.Hours))
	}
	if result.Hours[10] != 2 {
		t.Errorf("Hours[10] = %d, want 2", result.Hours[10])
	}
	if result.Hours[23] != 1 {
		t.Errorf("Hours[23] = %d, want 1", result.Hours[23])
	}
}

func TestAnalyze_Words(t *testing.T) {
	a, err := NewAnalyzer(ActionWords, WithTopN(2))
	if err != nil {
		t.Fatal(err)
	}

	msgs := []*export.Message{
		msg("2024-01-15 10:00", "Alice", "go go go"),
		msg("2024-01-15 10:01", "Bob", "go home"),
		msg("2024-01-15 10:02", "Alice", "Home sweet home"),
	}

	result, err := a.Analyze(context.Background(), &sliceSource{msgs: msgs})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(result.Words) != 2 {
		t.Fatalf("Got %d words, want 2 (top-N)", len(result.Words))
	}
	if result.Words[0].Word != "go" || result.Words[0].Count != 4 {
		t.Errorf("Words[0] = %+v, want go with 4", result.Words[0])
	}
	if result.Words[1].Word != "home" || result.Words[1].Count != 3 {
		t.Errorf("Words[1] = %+v, want home with 3 (case-folded)", result.Words[1])
	}
}

func TestAnalyze_TimeRangeFilter(t *testing.T) {
	start := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	a, err := NewAnalyzer(ActionStat, WithTimeRange(start, end))
	if err != nil {
		t.Fatal(err)
	}

	result, err := a.Analyze(context.Background(), &sliceSource{msgs: testMessages()})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	// Only the Jan 16 and Jan 18 messages fall in range.
	if result.Metadata.MessagesProcessed != 2 {
		t.Errorf("MessagesProcessed = %d, want 2", result.Metadata.MessagesProcessed)
	}
	if result.TotalCount() != 2 {
		t.Errorf("TotalCount() = %d, want 2", result.TotalCount())
	}
}

func TestNewAnalyzer_UnknownAction(t *testing.T) {
	_, err := NewAnalyzer(Action("bogus"))

	var unknownErr *UnknownActionError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("NewAnalyzer() error = %v, want *UnknownActionError", err)
	}
	if unknownErr.Action != "bogus" {
		t.Errorf("Action = %q, want bogus", unknownErr.Action)
	}
	if len(unknownErr.Available) != len(Actions()) {
		t.Errorf("Available lists %d actions, want %d", len(unknownErr.Available), len(Actions()))
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions() {
		if _, err := ParseAction(string(a)); err != nil {
			t.Errorf("ParseAction(%q) error = %v", a, err)
		}
	}

	_, err := ParseAction("nope")
	var unknownErr *UnknownActionError
	if !errors.As(err, &unknownErr) {
		t.Errorf("ParseAction(nope) error = %v, want *UnknownActionError", err)
	}
}

func TestAnalyze_Metadata(t *testing.T) {
	a, err := NewAnalyzer(ActionData)
	if err != nil {
		t.Fatal(err)
	}

	result, err := a.Analyze(context.Background(), &sliceSource{msgs: testMessages()})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(result.Metadata.Sources) != 1 || result.Metadata.Sources[0] != "chat.txt" {
		t.Errorf("Sources = %v", result.Metadata.Sources)
	}
	wantFirst := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	wantLast := time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC)
	if !result.Metadata.First.Equal(wantFirst) {
		t.Errorf("First = %v, want %v", result.Metadata.First, wantFirst)
	}
	if !result.Metadata.Last.Equal(wantLast) {
		t.Errorf("Last = %v, want %v", result.Metadata.Last, wantLast)
	}
}

func TestAnalyze_ContextCancellation(t *testing.T) {
	a, err := NewAnalyzer(ActionData)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = a.Analyze(ctx, &sliceSource{msgs: testMessages()})
	if err != context.Canceled {
		t.Errorf("Analyze() error = %v, want context.Canceled", err)
	}
}
