// Package storage provides SQLite-based history of scenario runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord is one recorded scenario run.
type RunRecord struct {
	ID        int64
	RunID     string // Assigned by SaveRun when empty
	Scenario  string
	Passed    int
	Failed    int
	Duration  time.Duration
	CreatedAt time.Time
	Steps     []StepRecord
}

// OK reports whether every step passed.
func (r RunRecord) OK() bool {
	return r.Failed == 0
}

// StepRecord is one step of a recorded run.
type StepRecord struct {
	Index   int
	Op      string
	Passed  bool
	Detail  string
	Failure string
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			scenario TEXT NOT NULL,
			passed INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0,
			duration_us INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);

		CREATE TABLE IF NOT EXISTS run_steps (
			run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			op TEXT NOT NULL,
			passed INTEGER NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			failure TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (run_id, idx)
		);
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

// SaveRun records a run and its steps in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(run RunRecord) (int64, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (run_id, scenario, passed, failed, duration_us)
		 VALUES (?, ?, ?, ?, ?)`,
		run.RunID, run.Scenario, run.Passed, run.Failed, run.Duration.Microseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, st := range run.Steps {
		if _, err := tx.Exec(
			`INSERT INTO run_steps (run_id, idx, op, passed, detail, failure)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			run.RunID, st.Index, st.Op, st.Passed, st.Detail, st.Failure,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save step %d: %w", st.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// RecentRuns retrieves the most recent runs, optionally for one scenario.
// Steps are not loaded; use Run for the full record.
func (s *Store) RecentRuns(scenario string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, run_id, scenario, passed, failed, duration_us, created_at FROM runs`
	args := []any{}
	if scenario != "" {
		query += ` WHERE scenario = ?`
		args = append(args, scenario)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Run retrieves a run with its steps by run ID.
// Returns nil if no such run exists.
func (s *Store) Run(runID string) (*RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, run_id, scenario, passed, failed, duration_us, created_at
		 FROM runs WHERE run_id = ?`,
		runID,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT idx, op, passed, detail, failure
		 FROM run_steps WHERE run_id = ? ORDER BY idx`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var st StepRecord
		if err := rows.Scan(&st.Index, &st.Op, &st.Passed, &st.Detail, &st.Failure); err != nil {
			return nil, fmt.Errorf("storage: cannot scan step: %w", err)
		}
		r.Steps = append(r.Steps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &r, nil
}

// ClearRuns deletes all runs of the given scenario.
func (s *Store) ClearRuns(scenario string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM run_steps WHERE run_id IN (SELECT run_id FROM runs WHERE scenario = ?)`,
		scenario,
	); err != nil {
		return fmt.Errorf("storage: cannot clear steps: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE scenario = ?", scenario); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return tx.Commit()
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	Scenario    string
	Runs        int
	CleanRuns   int // Runs with no failed steps
	AvgDuration time.Duration
	LastRun     time.Time
}

// AllScenarioStats retrieves statistics for every scenario that has been run.
func (s *Store) AllScenarioStats() (map[string]*ScenarioStats, error) {
	rows, err := s.db.Query(
		`SELECT scenario, COUNT(*), SUM(CASE WHEN failed = 0 THEN 1 ELSE 0 END),
		        AVG(duration_us), MAX(created_at)
		 FROM runs
		 GROUP BY scenario`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ScenarioStats)
	for rows.Next() {
		var st ScenarioStats
		var avg float64
		var lastRun any
		if err := rows.Scan(&st.Scenario, &st.Runs, &st.CleanRuns, &avg, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.AvgDuration = time.Duration(avg) * time.Microsecond
		st.LastRun = parseTime(lastRun)
		stats[st.Scenario] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var r RunRecord
	var durationUS int64
	var createdAt any
	if err := row.Scan(&r.ID, &r.RunID, &r.Scenario, &r.Passed, &r.Failed, &durationUS, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.Duration = time.Duration(durationUS) * time.Microsecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
