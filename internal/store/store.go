package store

import "perfgate/internal/results"

// DefaultDBPath is the default relative path for the SQLite run index.
// Resolve against cwd; Open() creates the parent dir (e.g. .perfgate).
const DefaultDBPath = ".perfgate/perfgate.db"

// Run is one archived test run.
type Run struct {
	RunID         string
	ArchivedAt    string
	ScenarioCount int
}

// MetricRow is one scenario's snapshot within an archived run.
type MetricRow struct {
	RunID             string
	Scenario          results.Scenario
	AvgDurationMs     float64
	P95DurationMs     float64
	P99DurationMs     float64
	ErrorRate         float64
	RequestsPerSecond float64
	TotalRequests     int64
}

// Store is the run-index persistence facade. The CLI uses only this
// interface; the implementation is SQLite.
type Store interface {
	// RecordRun indexes an archived run and its per-scenario metrics.
	// Re-recording the same run ID replaces its metric rows.
	RecordRun(runID string, res map[results.Scenario]*results.Result) error
	// GetRun returns one archived run, or nil if unknown.
	GetRun(runID string) (*Run, error)
	// ListRuns returns up to limit archived runs, newest first.
	ListRuns(limit int) ([]*Run, error)
	// ScenarioSeries returns up to limit metric rows for one scenario,
	// newest run first.
	ScenarioSeries(scenario results.Scenario, limit int) ([]MetricRow, error)
	Close() error
}
