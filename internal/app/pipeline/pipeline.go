// Package pipeline orchestrates the command interpretation flow: normalize
// the raw command, split it into intents, extract attributes per intent,
// resolve the target project, and submit each task independently.
//
// Failures local to one intent never abort the batch; they are captured as
// per-item error results. Only an empty command is rejected outright.
package pipeline

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskomat/taskomat/internal/domain"
	"github.com/taskomat/taskomat/internal/infra/metrics"
	"github.com/taskomat/taskomat/internal/nlp"
)

// History records processed batches. The sqlite store implements it; a nil
// history disables recording.
type History interface {
	InsertBatch(batch domain.CommandBatch) error
}

// Pipeline drives one command through all stages. Stateless: every field is
// wired once at startup and only read afterwards.
type Pipeline struct {
	normalizer *nlp.Normalizer
	splitter   *nlp.Splitter
	extractor  *nlp.Extractor
	projects   *ProjectResolver
	tasks      domain.TaskCreator
	history    History
}

// New wires a pipeline. tasks must be non-nil; history may be nil.
func New(vocab nlp.Vocabulary, dates domain.DateResolver, dir domain.ProjectDirectory, tasks domain.TaskCreator, history History) *Pipeline {
	return &Pipeline{
		normalizer: nlp.NewNormalizer(vocab),
		splitter:   nlp.NewSplitter(vocab),
		extractor:  nlp.NewExtractor(vocab, dates),
		projects:   NewProjectResolver(dir),
		tasks:      tasks,
		history:    history,
	}
}

// Extractor exposes the extractor so callers can pin its clock in tests.
func (p *Pipeline) Extractor() *nlp.Extractor { return p.extractor }

// Run processes one raw command and returns one result per detected intent,
// in input order. The only error is an empty command; everything else is
// captured inside the results.
func (p *Pipeline) Run(ctx context.Context, command string) ([]domain.SubmissionResult, error) {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return nil, domain.ErrEmptyCommand
	}
	metrics.CommandsReceived.Inc()

	intents := p.splitter.Split(p.normalizer.Normalize(trimmed))
	metrics.IntentsParsed.Add(float64(len(intents)))

	results := make([]domain.SubmissionResult, 0, len(intents))
	for _, intent := range intents {
		results = append(results, p.submit(ctx, intent))
	}

	if p.history != nil {
		batch := domain.CommandBatch{
			ID:         uuid.NewString(),
			Command:    trimmed,
			ReceivedAt: time.Now(),
			Results:    results,
		}
		// History is observational; a write failure never alters the batch.
		if err := p.history.InsertBatch(batch); err != nil {
			log.Printf("[pipeline] record batch %s: %v", batch.ID, err)
		}
	}

	return results, nil
}

// Parse runs the interpretation stages only — no resolution, no submission,
// no external calls. Backs the dry-run CLI.
func (p *Pipeline) Parse(command string) ([]domain.ParsedTask, error) {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return nil, domain.ErrEmptyCommand
	}

	intents := p.splitter.Split(p.normalizer.Normalize(trimmed))
	tasks := make([]domain.ParsedTask, 0, len(intents))
	for _, intent := range intents {
		tasks = append(tasks, p.extractor.Extract(intent))
	}
	return tasks, nil
}

// submit processes one intent end to end and always returns a result.
func (p *Pipeline) submit(ctx context.Context, intent domain.TaskIntent) domain.SubmissionResult {
	parsed := p.extractor.Extract(intent)

	task := domain.NewTask{
		Content:     parsed.Content,
		Priority:    parsed.Priority,
		DueDatetime: parsed.Due,
		Labels:      parsed.Labels,
	}

	if parsed.Project != "" {
		id, err := p.projects.Resolve(ctx, parsed.Project)
		if err != nil {
			// Proceed without a project assignment; the task still counts.
			log.Printf("[pipeline] resolve project %q: %v", parsed.Project, err)
		} else {
			task.ProjectID = id
		}
	}

	start := time.Now()
	created, err := p.tasks.CreateTask(ctx, task)
	metrics.SubmitLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.Submissions.WithLabelValues("error").Inc()
		kind := domain.KindOf(err)
		if kind == "" {
			kind = domain.KindTaskCreationFailed
		}
		return domain.SubmissionResult{
			Status:     domain.StatusError,
			Content:    parsed.Content,
			Diagnostic: diagnosticOf(err),
			ErrorKind:  kind,
		}
	}

	metrics.Submissions.WithLabelValues("success").Inc()
	ref := created.URL
	if ref == "" {
		ref = created.ID
	}
	return domain.SubmissionResult{
		Status:      domain.StatusSuccess,
		Content:     parsed.Content,
		Priority:    parsed.Priority,
		Due:         parsed.Due,
		Project:     task.ProjectID,
		Labels:      parsed.Labels,
		ExternalRef: ref,
	}
}

// diagnosticOf strips the taxonomy prefix so the result carries the raw
// diagnostic text, with the kind in its own field.
func diagnosticOf(err error) string {
	var pe *domain.PipelineError
	if errors.As(err, &pe) {
		return pe.Diagnostic
	}
	return err.Error()
}
