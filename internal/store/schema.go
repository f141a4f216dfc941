package store

// schemaVersionV1 is the current run-index schema.
const schemaVersionV1 = 1

// schemaV1 holds the run-index DDL: one row per archived run, one metric row
// per scenario in that run.
var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS runs (
	run_id         TEXT PRIMARY KEY,
	archived_at    TEXT NOT NULL,
	scenario_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_metrics (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id              TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	scenario            TEXT NOT NULL,
	avg_duration_ms     REAL NOT NULL,
	p95_duration_ms     REAL NOT NULL,
	p99_duration_ms     REAL NOT NULL,
	error_rate          REAL NOT NULL,
	requests_per_second REAL NOT NULL,
	total_requests      INTEGER NOT NULL,
	UNIQUE(run_id, scenario)
);

CREATE INDEX IF NOT EXISTS idx_run_metrics_scenario ON run_metrics(scenario, run_id);
`
