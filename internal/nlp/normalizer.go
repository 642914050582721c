package nlp

import (
	"regexp"
	"strings"
)

// Normalizer strips filler and imperative phrases from a raw command.
// Removal is whole-word and case-insensitive; the output is never longer
// than the input and all transformations produce new strings.
type Normalizer struct {
	patterns []*regexp.Regexp
}

// NewNormalizer compiles one removal pattern per filler phrase, in the
// order the vocabulary lists them (longer phrases are listed before their
// prefixes so "przypomnij mi" wins over "przypomnij").
func NewNormalizer(vocab Vocabulary) *Normalizer {
	patterns := make([]*regexp.Regexp, 0, len(vocab.Fillers))
	for _, phrase := range vocab.Fillers {
		patterns = append(patterns, wholePhrase(phrase))
	}
	return &Normalizer{patterns: patterns}
}

// Normalize removes every filler occurrence left to right and collapses the
// leftover whitespace. It never fails; an all-filler command simply comes
// out empty.
func (n *Normalizer) Normalize(text string) string {
	for _, re := range n.patterns {
		// Adjacent occurrences share a boundary character, so one pass can
		// leave a match behind. Repeat until stable.
		for {
			replaced := re.ReplaceAllString(text, "$1$2")
			if replaced == text {
				break
			}
			text = replaced
		}
	}
	return collapseSpaces(text)
}

// wholePhrase builds a case-insensitive matcher for a phrase delimited by
// non-letters. \b is ASCII-only, which breaks next to Polish diacritics, so
// boundaries are expressed as explicit letter-class checks.
func wholePhrase(phrase string) *regexp.Regexp {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)(^|[^\p{L}])` + strings.Join(words, `\s+`) + `([^\p{L}]|$)`)
}

// collapseSpaces trims and squeezes runs of whitespace into single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
