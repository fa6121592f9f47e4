// Package storage provides SQLite-based persistence for run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Sources a run can be recorded from.
const (
	SourcePlay    = "play"
	SourceProgram = "program"
	SourceSSH     = "ssh"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is a single finished or abandoned game.
type Run struct {
	ID         int64
	RunID      string // UUID, assigned by SaveRun when empty
	ScenarioID string
	Outcome    string // "won", "lost" or "none"
	Moves      int
	Teleports  int
	Steps      int
	Source     string
	Player     string
	CreatedAt  time.Time
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

	// Test connection
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
			scenario_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			teleports INTEGER NOT NULL DEFAULT 0,
			steps INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario_id ON runs(scenario_id);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(scenario_id, created_at DESC);
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

// SaveRun records a run and returns it with ID and RunID filled in.
func (s *Store) SaveRun(ctx context.Context, run Run) (Run, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if run.Outcome == "" {
		run.Outcome = "none"
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, scenario_id, outcome, moves, teleports, steps, source, player)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.ScenarioID, run.Outcome, run.Moves, run.Teleports, run.Steps, run.Source, run.Player,
	)
	if err != nil {
		return run, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return run, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	run.ID = id

	return run, nil
}

// RecentRuns retrieves the latest runs, newest first.
// An empty scenarioID returns runs for all scenarios.
func (s *Store) RecentRuns(ctx context.Context, scenarioID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, scenario_id, outcome, moves, teleports, steps, source, player, created_at
		 FROM runs
		 WHERE ? = '' OR scenario_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		scenarioID, scenarioID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.ScenarioID, &r.Outcome, &r.Moves, &r.Teleports,
			&r.Steps, &r.Source, &r.Player, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run by its UUID. Returns nil if it does not exist.
func (s *Store) RunByID(ctx context.Context, runID string) (*Run, error) {
	var r Run
	var createdAt any

	err := s.db.QueryRowContext(ctx,
		`SELECT id, run_id, scenario_id, outcome, moves, teleports, steps, source, player, created_at
		 FROM runs WHERE run_id = ?`,
		runID,
	).Scan(&r.ID, &r.RunID, &r.ScenarioID, &r.Outcome, &r.Moves, &r.Teleports,
		&r.Steps, &r.Source, &r.Player, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// ClearRuns deletes the runs of a scenario, or all runs when scenarioID is empty.
func (s *Store) ClearRuns(ctx context.Context, scenarioID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE ? = '' OR scenario_id = ?", scenarioID, scenarioID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	ScenarioID string
	Runs       int
	Wins       int
	Losses     int
	BestMoves  int // Fewest moves in a won run, 0 if never won
	LastPlayed time.Time
}

const statsColumns = `scenario_id, COUNT(*),
	SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END),
	SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END),
	COALESCE(MIN(CASE WHEN outcome = 'won' THEN moves END), 0),
	MAX(created_at)`

// GetScenarioStats retrieves aggregated statistics for a single scenario.
func (s *Store) GetScenarioStats(ctx context.Context, scenarioID string) (*ScenarioStats, error) {
	stats := &ScenarioStats{ScenarioID: scenarioID}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+statsColumns+` FROM runs WHERE scenario_id = ? GROUP BY scenario_id`,
		scenarioID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := scanStats(rows, stats); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// GetAllScenarioStats retrieves statistics for every scenario that has runs.
func (s *Store) GetAllScenarioStats(ctx context.Context) (map[string]*ScenarioStats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+statsColumns+` FROM runs GROUP BY scenario_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all scenario stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ScenarioStats)
	for rows.Next() {
		var st ScenarioStats
		if err := scanStats(rows, &st); err != nil {
			return nil, err
		}
		stats[st.ScenarioID] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func scanStats(rows *sql.Rows, st *ScenarioStats) error {
	var lastPlayed any
	if err := rows.Scan(&st.ScenarioID, &st.Runs, &st.Wins, &st.Losses, &st.BestMoves, &lastPlayed); err != nil {
		return fmt.Errorf("storage: cannot scan stats row: %w", err)
	}
	st.LastPlayed = parseTime(lastPlayed)
	return nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
