// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/chorpolice/internal/core"
)

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeCaught  Outcome = "caught"
	OutcomeFell    Outcome = "fell"
	OutcomeEscaped Outcome = "escaped"
)

// OutcomeFromEvents returns the outcome carried by a step's events.
// ok is false when none of them ends a run.
func OutcomeFromEvents(events []core.Event) (o Outcome, ok bool) {
	for _, e := range events {
		switch e {
		case core.EventCaught:
			return OutcomeCaught, true
		case core.EventFell:
			return OutcomeFell, true
		case core.EventWin:
			return OutcomeEscaped, true
		}
	}
	return "", false
}

// Run is a finished session ready to be recorded.
type Run struct {
	Variant  string
	Score    int
	Outcome  Outcome
	Duration time.Duration
}

// ScoreEntry is a recorded run.
type ScoreEntry struct {
	ID        int64
	Variant   string
	Score     int
	Outcome   Outcome
	Duration  time.Duration
	CreatedAt time.Time
}

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	path, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			score INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(variant, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns the ID of the inserted record.
func (s *Store) SaveRun(run Run) (int64, error) {
	if run.Variant == "" {
		return 0, errors.New("storage: run has no variant")
	}
	result, err := s.db.Exec(
		"INSERT INTO runs (variant, score, outcome, duration_ms) VALUES (?, ?, ?, ?)",
		run.Variant, run.Score, string(run.Outcome), run.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the best N runs for the given variant.
// Results are ordered by score descending; ties keep the earlier run first.
func (s *Store) TopScores(variant string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryEntries(
		`SELECT id, variant, score, outcome, duration_ms, created_at
		 FROM runs
		 WHERE variant = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		variant, limit,
	)
}

// AllScores retrieves every run for the given variant (no limit).
func (s *Store) AllScores(variant string) ([]ScoreEntry, error) {
	return s.queryEntries(
		`SELECT id, variant, score, outcome, duration_ms, created_at
		 FROM runs
		 WHERE variant = ?
		 ORDER BY score DESC, id ASC`,
		variant,
	)
}

func (s *Store) queryEntries(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var outcome string
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Variant, &e.Score, &outcome, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Outcome = Outcome(outcome)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given variant.
// Returns 0 if no runs exist.
func (s *Store) HighScore(variant string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE variant = ?",
		variant,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all runs for the given variant.
func (s *Store) ClearScores(variant string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// VariantStats contains aggregated statistics for a variant.
type VariantStats struct {
	Variant    string
	Runs       int
	Escapes    int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for every variant that has been played.
func (s *Store) Stats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), SUM(outcome = ?), MAX(score), AVG(score), MAX(created_at)
		 FROM runs
		 GROUP BY variant`,
		string(OutcomeEscaped),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var vs VariantStats
		var lastPlayed any
		if err := rows.Scan(&vs.Variant, &vs.Runs, &vs.Escapes, &vs.HighScore, &vs.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.LastPlayed = parseTime(lastPlayed)
		stats[vs.Variant] = &vs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
