package nlp

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/taskomat/taskomat/internal/domain"
	"github.com/taskomat/taskomat/internal/infra/metrics"
)

// DefaultPriority applies when an intent carries no priority cue.
const DefaultPriority = 1

// extractStep consumes recognized cue text from the working copy and fills
// in the matching ParsedTask field. Each step returns the remaining text, so
// later steps never see already-consumed cues.
type extractStep func(text string, task *domain.ParsedTask) string

// Extractor turns one task intent into a ParsedTask. Steps run in a fixed
// precedence order: priority, explicit project, due date, label inference,
// project inference. No step can fail — a missing cue yields the default.
type Extractor struct {
	vocab Vocabulary
	dates domain.DateResolver

	// Clock supplies the reference time for date resolution. Tests pin it.
	Clock func() time.Time

	priorityNum    *regexp.Regexp
	priorityLevels []levelPattern
	projectRe      *regexp.Regexp
}

type levelPattern struct {
	re    *regexp.Regexp
	value int
}

// NewExtractor compiles the cue patterns for the given vocabulary. The date
// resolver may be nil, in which case due dates are never extracted.
func NewExtractor(vocab Vocabulary, dates domain.DateResolver) *Extractor {
	prioAlt := quoteAlt(vocab.PriorityWords)
	projAlt := quoteAlt(vocab.ProjectWords)

	levels := make([]levelPattern, 0, len(vocab.PriorityLevels))
	for _, lvl := range vocab.PriorityLevels {
		levels = append(levels, levelPattern{
			re:    regexp.MustCompile(`(?i)(^|[^\p{L}])(?:` + prioAlt + `)\s+(?:` + quoteAlt(lvl.Phrases) + `)([^\p{L}]|$)`),
			value: lvl.Value,
		})
	}

	return &Extractor{
		vocab:          vocab,
		dates:          dates,
		Clock:          time.Now,
		priorityNum:    regexp.MustCompile(`(?i)(^|[^\p{L}])(?:` + prioAlt + `)\s+([0-9]+)`),
		priorityLevels: levels,
		projectRe:      regexp.MustCompile(`(?i)(^|[^\p{L}])(?:` + projAlt + `)\s+(\p{L}+)`),
	}
}

// Extract runs every extraction step over a working copy of the intent and
// returns the structured task. The leftover text, whitespace-collapsed,
// becomes the task content.
func (e *Extractor) Extract(intent domain.TaskIntent) domain.ParsedTask {
	task := domain.ParsedTask{Priority: DefaultPriority}

	steps := []extractStep{
		e.extractPriority,
		e.extractProject,
		e.extractDue,
		e.inferLabels,
		e.inferProject,
	}

	text := string(intent)
	for _, step := range steps {
		text = step(text, &task)
	}

	task.Content = collapseSpaces(text)
	return task
}

// extractPriority tries the numeric form first, then the named levels in
// their fixed order. The first named level that matches wins; the rest are
// not re-checked. The priority value is clamped to [1,4].
func (e *Extractor) extractPriority(text string, task *domain.ParsedTask) string {
	if loc := e.priorityNum.FindStringSubmatchIndex(text); loc != nil {
		n, _ := strconv.Atoi(text[loc[4]:loc[5]])
		task.Priority = clampPriority(n)
		return cutSpan(text, loc[3], loc[1])
	}

	for _, lvl := range e.priorityLevels {
		if loc := lvl.re.FindStringSubmatchIndex(text); loc != nil {
			task.Priority = clampPriority(lvl.value)
			return cutSpan(text, loc[3], loc[4])
		}
	}

	return text
}

// extractProject captures the first "projekt <word>" cue. The captured name
// gets its first rune uppercased, the remainder is left as written.
func (e *Extractor) extractProject(text string, task *domain.ParsedTask) string {
	loc := e.projectRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return text
	}
	task.Project = capitalize(text[loc[4]:loc[5]])
	return cutSpan(text, loc[3], loc[1])
}

// extractDue hands the remaining text to the date resolver and strips the
// matched spans. No match is not an error; due simply stays absent.
func (e *Extractor) extractDue(text string, task *domain.ParsedTask) string {
	if e.dates == nil {
		return text
	}

	res, ok := e.dates.Resolve(text, e.Clock())
	if !ok {
		metrics.DateResolutions.WithLabelValues("absent").Inc()
		return text
	}
	metrics.DateResolutions.WithLabelValues("resolved").Inc()

	task.Due = res.Time.Format("2006-01-02T15:04:05")

	spans := append([]domain.Span(nil), res.Spans...)
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start > spans[j].Start })
	for _, sp := range spans {
		text = cutSpan(text, sp.Start, sp.End)
	}
	return text
}

// inferLabels scans the remaining content tokens against the keyword table.
// Labels are inferred, not stripped: matched keywords stay in the content.
func (e *Extractor) inferLabels(text string, task *domain.ParsedTask) string {
	tokens := tokenSet(text)

	seen := make(map[string]bool)
	for _, rule := range e.vocab.Labels {
		for _, kw := range rule.Keywords {
			if tokens[strings.ToLower(kw)] {
				seen[rule.Label] = true
				break
			}
		}
	}

	if len(seen) > 0 {
		labels := make([]string, 0, len(seen))
		for l := range seen {
			labels = append(labels, l)
		}
		sort.Strings(labels)
		task.Labels = labels
	}
	return text
}

// inferProject assigns a project from the keyword table when no explicit
// project cue was found. Rules are checked in order; first match wins.
func (e *Extractor) inferProject(text string, task *domain.ParsedTask) string {
	if task.Project != "" {
		return text
	}

	tokens := tokenSet(text)
	for _, rule := range e.vocab.Projects {
		for _, kw := range rule.Keywords {
			if tokens[strings.ToLower(kw)] {
				task.Project = rule.Project
				return text
			}
		}
	}
	return text
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func quoteAlt(words []string) string {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	return strings.Join(quoted, "|")
}

// cutSpan removes text[start:end], keeping whatever surrounds it. Leftover
// double spaces are collapsed once all steps have run.
func cutSpan(text string, start, end int) string {
	return text[:start] + text[end:]
}

func clampPriority(n int) int {
	if n < 1 {
		return 1
	}
	if n > 4 {
		return 4
	}
	return n
}

// capitalize uppercases the first rune and leaves the remainder unchanged.
func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// tokenSet lowercases and splits the text into punctuation-trimmed tokens.
func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,!?:;\"'()")
		if tok != "" {
			set[tok] = true
		}
	}
	return set
}
