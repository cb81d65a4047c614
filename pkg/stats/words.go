package stats

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/graup/kakaotalk-analyzer/pkg/export"
)

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// CountWords returns the number of words in text.
func CountWords(text string) int {
	return len(wordPattern.FindAllString(text, -1))
}

// wordsEngine computes word frequencies across all messages.
type wordsEngine struct {
	topN   int
	counts map[string]int
}

func newWordsEngine(topN int) *wordsEngine {
	return &wordsEngine{
		topN:   topN,
		counts: make(map[string]int),
	}
}

func (e *wordsEngine) Name() string {
	return string(ActionWords)
}

func (e *wordsEngine) Process(_ context.Context, msg *export.Message) error {
	for _, w := range wordPattern.FindAllString(msg.Text, -1) {
		e.counts[strings.ToLower(w)]++
	}
	return nil
}

func (e *wordsEngine) Finalize(_ context.Context, result *Result) error {
	words := make([]WordCount, 0, len(e.counts))
	for w, c := range e.counts {
		words = append(words, WordCount{Word: w, Count: c})
	}

	// Rank by count descending, ties alphabetically for stable output.
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	if e.topN > 0 && len(words) > e.topN {
		words = words[:e.topN]
	}
	result.Words = words
	return nil
}

func (e *wordsEngine) Reset() {
	e.counts = make(map[string]int)
}
