// Package store provides a SQLite-backed history of booking runs. It is
// write-only from the booking engine's perspective: target dates are
// recomputed every run and no booking decision ever reads history.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"deskbooker/internal/booking"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store records booking runs and their per-date outcomes.
type Store struct {
	db *sql.DB
}

// Run is one recorded booking run.
type Run struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Location   string
	Total      int
	Booked     int
	Error      string
}

// RunResult is one date's recorded outcome within a run.
type RunResult struct {
	Date    string
	Outcome string
	Booked  bool
}

// DefaultPath returns the history database location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "deskbooker", "history.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "deskbooker", "history.db")
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the history database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores one run report and its per-date outcomes.
func (s *Store) RecordRun(report booking.RunReport, runErr error) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}

	res, err := tx.Exec(`INSERT INTO runs
		(started_at, finished_at, location, total, booked, error)
		VALUES (?, ?, ?, ?, ?, ?)`,
		report.StartedAt.UTC().Format(time.RFC3339),
		report.FinishedAt.UTC().Format(time.RFC3339),
		report.Location,
		len(report.Results),
		report.BookedCount(),
		errText,
	)
	if err != nil {
		return 0, err
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	details := append([]booking.DateResult(nil), report.Details...)
	sort.Slice(details, func(i, j int) bool { return details[i].Date < details[j].Date })
	for _, d := range details {
		booked := 0
		if d.Outcome.Booked() {
			booked = 1
		}
		if _, err := tx.Exec(`INSERT OR REPLACE INTO run_results
			(run_id, date, outcome, booked) VALUES (?, ?, ?, ?)`,
			runID, d.Date, d.Outcome.String(), booked); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit < 1 {
		limit = 10
	}

	rows, err := s.db.Query(`SELECT id, started_at, finished_at, location, total, booked, error
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.Location, &r.Total, &r.Booked, &r.Error); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunResults returns the per-date outcomes of one run, in date order.
func (s *Store) RunResults(runID int64) ([]RunResult, error) {
	rows, err := s.db.Query(`SELECT date, outcome, booked
		FROM run_results WHERE run_id = ? ORDER BY date`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []RunResult
	for rows.Next() {
		var rr RunResult
		var booked int
		if err := rows.Scan(&rr.Date, &rr.Outcome, &booked); err != nil {
			return nil, err
		}
		rr.Booked = booked == 1
		results = append(results, rr)
	}
	return results, rows.Err()
}
