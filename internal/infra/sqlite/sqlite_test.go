package sqlite

import (
	"fmt"
	"testing"
	"time"

	"github.com/taskomat/taskomat/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleBatch(id string, at time.Time) domain.CommandBatch {
	return domain.CommandBatch{
		ID:         id,
		Command:    "kup mleko i zadzwoń do mamy",
		ReceivedAt: at,
		Results: []domain.SubmissionResult{
			{
				Status:      domain.StatusSuccess,
				Content:     "kup mleko",
				Priority:    1,
				Project:     "p1",
				Labels:      []string{"zakupy"},
				ExternalRef: "https://tasks.example/t1",
			},
			{
				Status:     domain.StatusError,
				Content:    "zadzwoń do mamy",
				Priority:   1,
				Diagnostic: "HTTP 500: boom",
				ErrorKind:  domain.KindTaskCreationFailed,
			},
		},
	}
}

func TestInsertAndReadBatch(t *testing.T) {
	db := newTestDB(t)

	at := time.Date(2026, time.March, 4, 10, 30, 0, 0, time.UTC)
	if err := db.InsertBatch(sampleBatch("b1", at)); err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}

	batches, err := db.RecentBatches(10)
	if err != nil {
		t.Fatalf("RecentBatches: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(batches))
	}

	b := batches[0]
	if b.ID != "b1" {
		t.Errorf("ID = %q, want b1", b.ID)
	}
	if b.Command != "kup mleko i zadzwoń do mamy" {
		t.Errorf("Command = %q", b.Command)
	}
	if !b.ReceivedAt.Equal(at) {
		t.Errorf("ReceivedAt = %v, want %v", b.ReceivedAt, at)
	}
	if len(b.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(b.Results))
	}

	first, second := b.Results[0], b.Results[1]
	if first.Status != domain.StatusSuccess || first.Content != "kup mleko" {
		t.Errorf("first = %+v", first)
	}
	if len(first.Labels) != 1 || first.Labels[0] != "zakupy" {
		t.Errorf("first.Labels = %v", first.Labels)
	}
	if first.ExternalRef != "https://tasks.example/t1" {
		t.Errorf("first.ExternalRef = %q", first.ExternalRef)
	}
	if second.Status != domain.StatusError || second.Diagnostic != "HTTP 500: boom" {
		t.Errorf("second = %+v", second)
	}
}

func TestResultOrderSurvivesRoundtrip(t *testing.T) {
	db := newTestDB(t)

	batch := domain.CommandBatch{
		ID:         "b1",
		Command:    "alfa, beta, gamma, delta, epsilon",
		ReceivedAt: time.Now(),
	}
	for _, content := range []string{"alfa", "beta", "gamma", "delta", "epsilon"} {
		batch.Results = append(batch.Results, domain.SubmissionResult{
			Status:  domain.StatusSuccess,
			Content: content,
		})
	}
	if err := db.InsertBatch(batch); err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}

	batches, err := db.RecentBatches(1)
	if err != nil {
		t.Fatalf("RecentBatches: %v", err)
	}
	if len(batches) != 1 || len(batches[0].Results) != 5 {
		t.Fatalf("unexpected shape: %+v", batches)
	}
	for i, want := range []string{"alfa", "beta", "gamma", "delta", "epsilon"} {
		if got := batches[0].Results[i].Content; got != want {
			t.Errorf("results[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestRecentBatchesNewestFirst(t *testing.T) {
	db := newTestDB(t)

	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		b := sampleBatch(fmt.Sprintf("b%d", i), base.Add(time.Duration(i)*time.Hour))
		if err := db.InsertBatch(b); err != nil {
			t.Fatalf("InsertBatch %d: %v", i, err)
		}
	}

	batches, err := db.RecentBatches(3)
	if err != nil {
		t.Fatalf("RecentBatches: %v", err)
	}
	if len(batches) != 3 {
		t.Fatalf("batches = %d, want 3 (limit)", len(batches))
	}
	for i, want := range []string{"b4", "b3", "b2"} {
		if batches[i].ID != want {
			t.Errorf("batches[%d].ID = %q, want %q", i, batches[i].ID, want)
		}
	}
}

func TestRecentBatchesDefaultLimit(t *testing.T) {
	db := newTestDB(t)

	batches, err := db.RecentBatches(0)
	if err != nil {
		t.Fatalf("RecentBatches: %v", err)
	}
	if len(batches) != 0 {
		t.Errorf("batches = %d, want 0 on empty store", len(batches))
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.InsertBatch(sampleBatch("b1", time.Now())); err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}
	db.Close()

	db, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	batches, err := db.RecentBatches(10)
	if err != nil {
		t.Fatalf("RecentBatches: %v", err)
	}
	if len(batches) != 1 {
		t.Errorf("batches after reopen = %d, want 1", len(batches))
	}
}
