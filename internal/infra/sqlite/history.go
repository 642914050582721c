package sqlite

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/taskomat/taskomat/internal/domain"
)

// ─── Submission history ─────────────────────────────────────────────────────

// InsertBatch records a processed command batch with its per-intent results.
// Result rows get ULID primary keys so insertion order survives sorting.
func (d *DB) InsertBatch(batch domain.CommandBatch) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	succeeded, failed := 0, 0
	for _, r := range batch.Results {
		if r.Status == domain.StatusSuccess {
			succeeded++
		} else {
			failed++
		}
	}

	_, err = tx.Exec(
		`INSERT INTO command_batches (id, command, received_at, intents, succeeded, failed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		batch.ID, batch.Command, batch.ReceivedAt.Unix(), len(batch.Results), succeeded, failed,
	)
	if err != nil {
		return err
	}

	for i, r := range batch.Results {
		_, err = tx.Exec(
			`INSERT INTO batch_results (id, batch_id, position, status, content, priority, project, due, labels, external_ref, diagnostic)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ulid.Make().String(), batch.ID, i, string(r.Status), r.Content, r.Priority,
			r.Project, r.Due, strings.Join(r.Labels, ","), r.ExternalRef, r.Diagnostic,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentBatches returns up to limit batches, newest first, each with its
// results in original intent order.
func (d *DB) RecentBatches(limit int) ([]domain.CommandBatch, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.db.Query(
		`SELECT id, command, received_at FROM command_batches
		 ORDER BY received_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []domain.CommandBatch
	for rows.Next() {
		var b domain.CommandBatch
		var receivedAt int64
		if err := rows.Scan(&b.ID, &b.Command, &receivedAt); err != nil {
			return nil, err
		}
		b.ReceivedAt = time.Unix(receivedAt, 0)
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range batches {
		results, err := d.batchResults(batches[i].ID)
		if err != nil {
			return nil, err
		}
		batches[i].Results = results
	}
	return batches, nil
}

func (d *DB) batchResults(batchID string) ([]domain.SubmissionResult, error) {
	rows, err := d.db.Query(
		`SELECT status, content, priority, project, due, labels, external_ref, diagnostic
		 FROM batch_results WHERE batch_id = ? ORDER BY position`, batchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.SubmissionResult
	for rows.Next() {
		var r domain.SubmissionResult
		var status, labels string
		if err := rows.Scan(&status, &r.Content, &r.Priority, &r.Project, &r.Due, &labels, &r.ExternalRef, &r.Diagnostic); err != nil {
			return nil, err
		}
		r.Status = domain.ResultStatus(status)
		if labels != "" {
			r.Labels = strings.Split(labels, ",")
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
