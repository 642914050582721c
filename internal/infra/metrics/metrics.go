// Package metrics provides Prometheus metrics for taskomat — counters and
// histograms covering the command pipeline and the external task API calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Pipeline ───────────────────────────────────────────────────────────────

// CommandsReceived counts incoming commands, including rejected empty ones.
var CommandsReceived = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "taskomat",
	Name:      "commands_received_total",
	Help:      "Total natural-language commands received.",
})

// IntentsParsed counts task intents produced by the splitter.
var IntentsParsed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "taskomat",
	Name:      "intents_parsed_total",
	Help:      "Total task intents extracted from commands.",
})

// DateResolutions counts date resolver outcomes (resolved / absent).
var DateResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "taskomat",
	Name:      "date_resolutions_total",
	Help:      "Date resolver outcomes per intent.",
}, []string{"outcome"})

// ─── Project resolution ─────────────────────────────────────────────────────

// ProjectResolutions counts directory lookups by outcome (hit / created / failed).
var ProjectResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "taskomat",
	Name:      "project_resolutions_total",
	Help:      "Project name resolutions by outcome.",
}, []string{"outcome"})

// ─── Submission ─────────────────────────────────────────────────────────────

// Submissions counts task submissions by result status.
var Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "taskomat",
	Name:      "submissions_total",
	Help:      "Task submissions by status (success / error).",
}, []string{"status"})

// SubmitLatency tracks the task-creation call duration in seconds.
var SubmitLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "taskomat",
	Name:      "submit_latency_seconds",
	Help:      "Task-creation call duration in seconds.",
	Buckets:   prometheus.DefBuckets,
})
