// Package domain defines the core types of the command pipeline.
// Everything here is a value object: created while one command is being
// processed, serialized into the response, and discarded. Nothing in this
// package touches the network or the database.
package domain

import "time"

// TaskIntent is one independently submittable task request, still in text
// form, produced by splitting a compound command. Immutable once produced.
type TaskIntent string

// ParsedTask is the structured result of attribute extraction over a single
// intent. Content never contains the cue substrings that were matched and
// removed; Priority is always within [1,4].
type ParsedTask struct {
	Content  string   `json:"content"`
	Priority int      `json:"priority"`
	Project  string   `json:"project,omitempty"` // display name, first rune uppercased
	Due      string   `json:"due,omitempty"`     // local timestamp, 2006-01-02T15:04:05
	Labels   []string `json:"labels,omitempty"`  // sorted, deduplicated
}

// Project is one entry of the external project directory.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewTask is the submission payload for the external task API.
type NewTask struct {
	Content     string
	Priority    int
	DueDatetime string // optional, 2006-01-02T15:04:05
	ProjectID   string // optional
	Labels      []string
}

// CreatedTask is the external API's view of a successfully created task.
type CreatedTask struct {
	ID      string
	Content string
	URL     string
}

// ResultStatus discriminates the two shapes of a SubmissionResult.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusError   ResultStatus = "error"
)

// CommandBatch records one processed command and its per-intent outcomes,
// for the submission history. The pipeline computes results first; history
// is written afterwards and never changes a batch outcome.
type CommandBatch struct {
	ID         string             `json:"id"`
	Command    string             `json:"command"`
	ReceivedAt time.Time          `json:"received_at"`
	Results    []SubmissionResult `json:"results"`
}

// SubmissionResult is the per-intent outcome of a batch. A batch yields one
// result per detected intent, in the order the intents appeared.
type SubmissionResult struct {
	Status      ResultStatus `json:"status"`
	Content     string       `json:"content"`
	Priority    int          `json:"priority,omitempty"`
	Due         string       `json:"due,omitempty"`
	Project     string       `json:"project,omitempty"` // resolved project id
	Labels      []string     `json:"labels,omitempty"`
	ExternalRef string       `json:"external_ref,omitempty"`
	Diagnostic  string       `json:"diagnostic,omitempty"`
	ErrorKind   ErrorKind    `json:"error_kind,omitempty"`
}
