package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_RemovesFillers(t *testing.T) {
	n := NewNormalizer(DefaultVocabulary())

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"polish imperative", "dodaj kup mleko", "kup mleko"},
		{"polish remind", "przypomnij mi o spotkaniu", "spotkaniu"},
		{"polish modal", "muszę zadzwonić do mamy", "zadzwonić do mamy"},
		{"english add", "add buy milk", "buy milk"},
		{"english remind", "remind me to call mom", "call mom"},
		{"case insensitive", "DODAJ kup mleko", "kup mleko"},
		{"adjacent fillers", "dodaj proszę kup mleko", "kup mleko"},
		{"mid sentence", "kup mleko proszę jutro", "kup mleko jutro"},
		{"no filler", "kup mleko", "kup mleko"},
		{"whitespace collapsed", "  kup   mleko  ", "kup mleko"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalize_WholeWordsOnly(t *testing.T) {
	n := NewNormalizer(DefaultVocabulary())

	// "dodaj" inside a longer word must survive.
	assert.Equal(t, "dodajnik sprawdź", n.Normalize("dodajnik sprawdź"))
	// "add" inside "address" must survive.
	assert.Equal(t, "update address book", n.Normalize("update address book"))
}

func TestNormalize_NeverLonger(t *testing.T) {
	n := NewNormalizer(DefaultVocabulary())

	inputs := []string{
		"dodaj kup mleko i zadzwoń",
		"przypomnij mi żeby zapłacić rachunki",
		"nic do usunięcia tutaj",
	}
	for _, in := range inputs {
		assert.LessOrEqual(t, len(n.Normalize(in)), len(in))
	}
}

func TestNormalize_AllFillerComesOutEmpty(t *testing.T) {
	n := NewNormalizer(DefaultVocabulary())
	assert.Equal(t, "", n.Normalize("dodaj proszę"))
}
