package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsRegistered(t *testing.T) {
	// Touch every metric so the registry has something to report.
	CommandsReceived.Inc()
	IntentsParsed.Inc()
	DateResolutions.WithLabelValues("resolved").Inc()
	ProjectResolutions.WithLabelValues("hit").Inc()
	Submissions.WithLabelValues("success").Inc()
	SubmitLatency.Observe(0.05)

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}

	want := []string{
		"taskomat_commands_received_total",
		"taskomat_intents_parsed_total",
		"taskomat_date_resolutions_total",
		"taskomat_project_resolutions_total",
		"taskomat_submissions_total",
		"taskomat_submit_latency_seconds",
	}
	for _, name := range want {
		if !found[name] {
			t.Errorf("metric %q not registered", name)
		}
	}
}
