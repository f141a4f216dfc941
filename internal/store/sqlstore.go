package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"perfgate/internal/results"
)

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

var _ Store = (*SqlStore)(nil)

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory (e.g. .perfgate) if it does not exist.
func Open(path string) (*SqlStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableCount == 0 {
		// Fresh database.
		if _, err := s.db.Exec(schemaV1); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", schemaVersionV1); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	}

	var v int
	err = s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		v = schemaVersionV1
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", v); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
	}
	if v != schemaVersionV1 {
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

// Close closes the database connection.
func (s *SqlStore) Close() error {
	return s.db.Close()
}

// RecordRun indexes an archived run. Runs inside a transaction so the run row
// and its metric rows land together; re-recording a run ID replaces its rows.
func (s *SqlStore) RecordRun(runID string, res map[results.Scenario]*results.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO runs(run_id, archived_at, scenario_count) VALUES(?, ?, ?)
		 ON CONFLICT(run_id) DO UPDATE SET archived_at=excluded.archived_at, scenario_count=excluded.scenario_count`,
		runID, nowUTC(), len(res),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM run_metrics WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("clear run metrics: %w", err)
	}

	// Stable insertion order keeps row IDs deterministic.
	scenarios := make([]results.Scenario, 0, len(res))
	for sc := range res {
		scenarios = append(scenarios, sc)
	}
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i] < scenarios[j] })

	for _, sc := range scenarios {
		sum := res[sc].Summary
		if _, err := tx.Exec(
			`INSERT INTO run_metrics(run_id, scenario, avg_duration_ms, p95_duration_ms, p99_duration_ms,
			                         error_rate, requests_per_second, total_requests)
			 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, string(sc), sum.AvgDurationMs, sum.P95DurationMs, sum.P99DurationMs,
			sum.ErrorRate, sum.RequestsPerSecond, sum.TotalRequests,
		); err != nil {
			return fmt.Errorf("insert run metric: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record tx: %w", err)
	}
	return nil
}

// GetRun returns the run by ID, or nil if unknown.
func (s *SqlStore) GetRun(runID string) (*Run, error) {
	var r Run
	err := s.db.QueryRow(
		"SELECT run_id, archived_at, scenario_count FROM runs WHERE run_id = ?", runID,
	).Scan(&r.RunID, &r.ArchivedAt, &r.ScenarioCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &r, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *SqlStore) ListRuns(limit int) ([]*Run, error) {
	q := "SELECT run_id, archived_at, scenario_count FROM runs ORDER BY run_id DESC"
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	var list []*Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.ArchivedAt, &r.ScenarioCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		list = append(list, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return list, nil
}

// ScenarioSeries returns up to limit metric rows for one scenario, newest run
// first. Feeds trend inspection across archived runs.
func (s *SqlStore) ScenarioSeries(scenario results.Scenario, limit int) ([]MetricRow, error) {
	q := `SELECT run_id, scenario, avg_duration_ms, p95_duration_ms, p99_duration_ms,
	             error_rate, requests_per_second, total_requests
	      FROM run_metrics WHERE scenario = ? ORDER BY run_id DESC`
	args := []any{string(scenario)}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("scenario series: %w", err)
	}
	defer rows.Close()
	var list []MetricRow
	for rows.Next() {
		var m MetricRow
		var sc string
		if err := rows.Scan(&m.RunID, &sc, &m.AvgDurationMs, &m.P95DurationMs, &m.P99DurationMs,
			&m.ErrorRate, &m.RequestsPerSecond, &m.TotalRequests); err != nil {
			return nil, fmt.Errorf("scan metric row: %w", err)
		}
		m.Scenario = results.Scenario(sc)
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scenario series: %w", err)
	}
	return list, nil
}
