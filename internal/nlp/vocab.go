// Package nlp implements the command interpretation pipeline: normalizing a
// raw command, splitting it into task intents, and extracting structured
// attributes from each intent. The pipeline recognizes a fixed vocabulary of
// cue words, not general grammar; the vocabulary itself is configuration.
package nlp

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary is the replaceable cue-word table the pipeline runs on.
// Defaults cover Polish plus the English equivalents; deployments override
// them with a YAML file to localize or specialize the vocabulary.
type Vocabulary struct {
	// Fillers are imperative/filler phrases stripped by the normalizer.
	Fillers []string `yaml:"fillers"`

	// Separators are the whole-word conjunctions that split a compound
	// command into intents. Comma is always a separator and is not listed.
	Separators []string `yaml:"separators"`

	// PriorityWords introduce a priority cue ("priorytet 3", "priority high").
	PriorityWords []string `yaml:"priority_words"`

	// PriorityLevels map named levels to values, checked in listed order.
	PriorityLevels []PriorityLevel `yaml:"priority_levels"`

	// ProjectWords introduce an explicit project cue ("projekt Zakupy").
	ProjectWords []string `yaml:"project_words"`

	// Labels infer labels from keywords left in the task content.
	Labels []LabelRule `yaml:"labels"`

	// Projects infer a project when no explicit project cue was given;
	// checked in listed order, first matching rule wins.
	Projects []ProjectRule `yaml:"projects"`
}

// PriorityLevel maps spoken level phrases to a priority value.
type PriorityLevel struct {
	Phrases []string `yaml:"phrases"`
	Value   int      `yaml:"value"`
}

// LabelRule contributes Label when any keyword appears in the content.
type LabelRule struct {
	Keywords []string `yaml:"keywords"`
	Label    string   `yaml:"label"`
}

// ProjectRule assigns Project when any keyword appears in the content.
type ProjectRule struct {
	Keywords []string `yaml:"keywords"`
	Project  string   `yaml:"project"`
}

// DefaultVocabulary returns the built-in Polish/English cue tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Fillers: []string{
			"przypomnij mi żeby", "przypomnij mi o", "przypomnij mi",
			"przypomnij", "dodaj zadanie", "dodaj", "proszę", "muszę",
			"chcę", "trzeba",
			"remind me to", "remind me", "add a task", "add", "please",
			"i need to", "i want to",
		},
		Separators: []string{
			"i", "oraz", "potem", "następnie",
			"and", "also", "then", "next",
		},
		PriorityWords: []string{"priorytet", "priority"},
		PriorityLevels: []PriorityLevel{
			{Phrases: []string{"wysoki", "high"}, Value: 4},
			{Phrases: []string{"średni", "medium"}, Value: 2},
			{Phrases: []string{"niski", "low"}, Value: 1},
		},
		ProjectWords: []string{"projekt", "project"},
		Labels: []LabelRule{
			{Keywords: []string{"zadzwoń", "zadzwonić", "call"}, Label: "telefon"},
			{Keywords: []string{"kup", "kupić", "zamów", "zamówić", "buy", "order"}, Label: "zakupy"},
			{Keywords: []string{"spotkanie", "spotkaj", "meet", "meeting"}, Label: "spotkanie"},
			{Keywords: []string{"napisz", "mail", "email"}, Label: "email"},
			{Keywords: []string{"zapłać", "zapłacić", "pay"}, Label: "płatności"},
		},
		Projects: []ProjectRule{
			{Keywords: []string{"kup", "kupić", "zamów", "zamówić", "buy", "order"}, Project: "Zakupy"},
			{Keywords: []string{"zadzwoń", "zadzwonić", "call"}, Project: "Telefony"},
			{Keywords: []string{"spotkanie", "spotkaj", "meet", "meeting"}, Project: "Spotkania"},
		},
	}
}

// LoadVocabulary reads a vocabulary override from a YAML file. Only sections
// present in the file replace the defaults, so a deployment can swap the
// label table without restating the filler list.
func LoadVocabulary(path string) (Vocabulary, error) {
	vocab := DefaultVocabulary()

	data, err := os.ReadFile(path)
	if err != nil {
		return vocab, fmt.Errorf("read vocabulary: %w", err)
	}

	var override Vocabulary
	if err := yaml.Unmarshal(data, &override); err != nil {
		return vocab, fmt.Errorf("parse vocabulary: %w", err)
	}

	if len(override.Fillers) > 0 {
		vocab.Fillers = override.Fillers
	}
	if len(override.Separators) > 0 {
		vocab.Separators = override.Separators
	}
	if len(override.PriorityWords) > 0 {
		vocab.PriorityWords = override.PriorityWords
	}
	if len(override.PriorityLevels) > 0 {
		vocab.PriorityLevels = override.PriorityLevels
	}
	if len(override.ProjectWords) > 0 {
		vocab.ProjectWords = override.ProjectWords
	}
	if len(override.Labels) > 0 {
		vocab.Labels = override.Labels
	}
	if len(override.Projects) > 0 {
		vocab.Projects = override.Projects
	}

	return vocab, nil
}
