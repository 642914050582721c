package domain

import (
	"context"
	"time"
)

// ─── Collaborator Interfaces ────────────────────────────────────────────────
// These interfaces define the boundary between the pipeline and the outside
// world. Infrastructure implements them; the pipeline depends only on them,
// so tests run against fakes with no network.

// ProjectDirectory is the external registry of projects.
type ProjectDirectory interface {
	// ListProjects returns every known project.
	ListProjects(ctx context.Context) ([]Project, error)

	// CreateProject registers a new project and returns it with its
	// assigned id.
	CreateProject(ctx context.Context, name string) (Project, error)
}

// TaskCreator submits one task to the external task API.
type TaskCreator interface {
	CreateTask(ctx context.Context, task NewTask) (CreatedTask, error)
}

// DateResolution is a successful natural-language date match: the resolved
// time plus the byte spans of the matched phrases, so the extractor can strip
// them from the task content.
type DateResolution struct {
	Time  time.Time
	Spans []Span
}

// Span is a half-open byte range [Start, End) into the scanned text.
type Span struct {
	Start, End int
}

// DateResolver interprets natural-language date/time phrases. Locale and the
// prefer-future bias are fixed at construction, not per call. Resolve is pure:
// same text and reference time, same answer.
type DateResolver interface {
	Resolve(text string, now time.Time) (DateResolution, bool)
}
