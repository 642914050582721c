package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskomat/taskomat/internal/domain"
)

func intents(ss ...string) []domain.TaskIntent {
	out := make([]domain.TaskIntent, 0, len(ss))
	for _, s := range ss {
		out = append(out, domain.TaskIntent(s))
	}
	return out
}

func TestSplit(t *testing.T) {
	s := NewSplitter(DefaultVocabulary())

	tests := []struct {
		name  string
		input string
		want  []domain.TaskIntent
	}{
		{"polish conjunction", "kup mleko i zadzwoń do mamy", intents("kup mleko", "zadzwoń do mamy")},
		{"english conjunction", "buy milk and call mom", intents("buy milk", "call mom")},
		{"comma", "kup mleko, zadzwoń do mamy", intents("kup mleko", "zadzwoń do mamy")},
		{"comma plus conjunction", "kup mleko, i zadzwoń do mamy", intents("kup mleko", "zadzwoń do mamy")},
		{"oraz", "kup mleko oraz zapłać rachunki", intents("kup mleko", "zapłać rachunki")},
		{"potem chain", "kup mleko potem zadzwoń potem napisz mail", intents("kup mleko", "zadzwoń", "napisz mail")},
		{"no separator", "kup mleko", intents("kup mleko")},
		{"adjacent separators dropped", "kup mleko,, zadzwoń", intents("kup mleko", "zadzwoń")},
		{"trailing separator", "kup mleko,", intents("kup mleko")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Split(tt.input))
		})
	}
}

func TestSplit_WholeWordBoundaries(t *testing.T) {
	s := NewSplitter(DefaultVocabulary())

	// "i" inside words like "mleki" or "spotkanie" must not split.
	assert.Equal(t, intents("odbierz mleki ze spotkania"), s.Split("odbierz mleki ze spotkania"))
	// "and" inside "sandwich" must not split.
	assert.Equal(t, intents("kup sandwich na lunch"), s.Split("kup sandwich na lunch"))
}

func TestSplit_NoTextDroppedOrDuplicated(t *testing.T) {
	s := NewSplitter(DefaultVocabulary())

	// Re-joining the segments must reconstruct every task mention.
	input := "kup mleko i zadzwoń do mamy, napisz mail oraz zapłać rachunki"
	got := s.Split(input)
	assert.Equal(t,
		intents("kup mleko", "zadzwoń do mamy", "napisz mail", "zapłać rachunki"),
		got)

	total := 0
	for _, seg := range got {
		total += len(seg)
	}
	// Segment text plus separators accounts for the whole input.
	assert.Less(t, total, len(input))
	assert.Greater(t, total, 0)
}
