package nlp

import (
	"regexp"
	"strings"

	"github.com/taskomat/taskomat/internal/domain"
)

// Splitter segments normalized text into independent task intents on a fixed
// set of coordinating conjunctions and commas. Word separators only match as
// whole words between whitespace, so "i" never splits inside task content.
type Splitter struct {
	re *regexp.Regexp
}

// NewSplitter builds the separator pattern from the vocabulary.
func NewSplitter(vocab Vocabulary) *Splitter {
	words := make([]string, 0, len(vocab.Separators))
	for _, w := range vocab.Separators {
		words = append(words, regexp.QuoteMeta(w))
	}
	alt := strings.Join(words, "|")

	// A comma followed by a conjunction ("kup mleko, i zadzwoń") is one
	// separator, so that alternative comes first.
	re := regexp.MustCompile(`(?i)\s*,\s*(?:(?:` + alt + `)\s+)?|\s+(?:` + alt + `)\s+`)
	return &Splitter{re: re}
}

// Split returns the ordered non-empty intents of the text. Empty segments
// produced by adjacent separators are dropped; text with no separator comes
// back as a single intent.
func (s *Splitter) Split(text string) []domain.TaskIntent {
	parts := s.re.Split(text, -1)
	intents := make([]domain.TaskIntent, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		intents = append(intents, domain.TaskIntent(p))
	}
	return intents
}
