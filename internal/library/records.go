package library

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one organize invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool
	Scanned    int
	Moved      int
	Skipped    int
	Failed     int
	BytesMoved int64
}

// RunSummary carries the final counters written when a run finishes.
type RunSummary struct {
	Scanned    int
	Moved      int
	Skipped    int
	Failed     int
	BytesMoved int64
}

// Transfer is one per-file outcome within a run.
type Transfer struct {
	RunID       string
	Source      string
	Destination string
	Title       string
	Year        int
	Resolution  string
	Media       string
	Size        int64
	Action      string
	Success     bool
	Reason      string
	CreatedAt   time.Time
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// BeginRun records the start of an organize run and returns its id.
func (s *Store) BeginRun(ctx context.Context, dryRun bool) (string, error) {
	id := uuid.NewString()
	err := s.execWithRetry(ctx,
		"INSERT INTO runs (id, started_at, dry_run) VALUES (?, ?, ?)",
		id, timestamp(time.Now()), dryRun,
	)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return id, nil
}

// FinishRun stamps the run finished and stores its counters.
func (s *Store) FinishRun(ctx context.Context, runID string, summary RunSummary) error {
	err := s.execWithRetry(ctx,
		`UPDATE runs
		    SET finished_at = ?, scanned = ?, moved = ?, skipped = ?, failed = ?, bytes_moved = ?
		  WHERE id = ?`,
		timestamp(time.Now()), summary.Scanned, summary.Moved, summary.Skipped,
		summary.Failed, summary.BytesMoved, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecordTransfer appends one per-file outcome to the ledger.
func (s *Store) RecordTransfer(ctx context.Context, t Transfer) error {
	created := t.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	err := s.execWithRetry(ctx,
		`INSERT INTO transfers
		    (run_id, source, destination, title, year, resolution, media,
		     size_bytes, action, success, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.RunID, t.Source, t.Destination, t.Title, t.Year, t.Resolution,
		t.Media, t.Size, t.Action, t.Success, t.Reason, timestamp(created),
	)
	if err != nil {
		return fmt.Errorf("record transfer: %w", err)
	}
	return nil
}

// RecentTransfers returns the newest transfers, most recent first.
func (s *Store) RecentTransfers(ctx context.Context, limit int) ([]Transfer, error) {
	if limit <= 0 {
		limit = 20
	}
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, source, destination, title, year, resolution, media,
		        size_bytes, action, success, reason, created_at
		   FROM transfers
		  ORDER BY id DESC
		  LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query transfers: %w", err)
	}
	defer rows.Close()

	var transfers []Transfer
	for rows.Next() {
		var (
			t       Transfer
			created string
		)
		if err := rows.Scan(&t.RunID, &t.Source, &t.Destination, &t.Title,
			&t.Year, &t.Resolution, &t.Media, &t.Size, &t.Action,
			&t.Success, &t.Reason, &created); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfers: %w", err)
	}
	return transfers, nil
}

// RecentRuns returns the newest runs, most recent first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, dry_run, scanned, moved, skipped, failed, bytes_moved
		   FROM runs
		  ORDER BY rowid DESC
		  LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			started  string
			finished sql.NullString
		)
		if err := rows.Scan(&r.ID, &started, &finished, &r.DryRun,
			&r.Scanned, &r.Moved, &r.Skipped, &r.Failed, &r.BytesMoved); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if finished.Valid {
			r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished.String)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
