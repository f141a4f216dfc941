package store

import (
	"path/filepath"
	"testing"

	"perfgate/internal/results"
)

func openTestStore(t *testing.T) *SqlStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), ".perfgate", "perfgate.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func runResults(p95 float64) map[results.Scenario]*results.Result {
	return map[results.Scenario]*results.Result{
		results.ScenarioBaseline: {
			Summary: results.Snapshot{
				AvgDurationMs: 120, P95DurationMs: p95, P99DurationMs: 600,
				ErrorRate: 0.01, RequestsPerSecond: 200, TotalRequests: 120000,
			},
		},
		results.ScenarioStress: {
			Summary: results.Snapshot{
				AvgDurationMs: 400, P95DurationMs: 2 * p95, P99DurationMs: 2400,
				ErrorRate: 0.08, RequestsPerSecond: 45, TotalRequests: 27000,
			},
		},
	}
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "perfgate.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perfgate.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := s.RecordRun("20260825-100000", runResults(300)); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer s2.Close()
	r, err := s2.GetRun("20260825-100000")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if r == nil || r.ScenarioCount != 2 {
		t.Errorf("run = %+v, want 2 scenarios", r)
	}
}

func TestGetRun_Unknown(t *testing.T) {
	s := openTestStore(t)
	r, err := s.GetRun("nope")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if r != nil {
		t.Errorf("got %+v, want nil for unknown run", r)
	}
}

func TestRecordRun_Idempotent(t *testing.T) {
	s := openTestStore(t)
	if err := s.RecordRun("20260825-100000", runResults(300)); err != nil {
		t.Fatalf("first RecordRun: %v", err)
	}
	if err := s.RecordRun("20260825-100000", runResults(500)); err != nil {
		t.Fatalf("second RecordRun: %v", err)
	}

	runs, err := s.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}

	series, err := s.ScenarioSeries(results.ScenarioBaseline, 0)
	if err != nil {
		t.Fatalf("ScenarioSeries: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("got %d metric rows, want 1 (replaced, not appended)", len(series))
	}
	if series[0].P95DurationMs != 500 {
		t.Errorf("p95 = %v, want latest recording 500", series[0].P95DurationMs)
	}
}

func TestListRuns_NewestFirstWithLimit(t *testing.T) {
	s := openTestStore(t)
	for _, id := range []string{"20260820-100000", "20260825-100000", "20260822-100000"} {
		if err := s.RecordRun(id, runResults(300)); err != nil {
			t.Fatalf("RecordRun %s: %v", id, err)
		}
	}

	runs, err := s.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].RunID != "20260825-100000" || runs[1].RunID != "20260822-100000" {
		t.Errorf("order = %s, %s; want newest first", runs[0].RunID, runs[1].RunID)
	}
}

func TestScenarioSeries(t *testing.T) {
	s := openTestStore(t)
	if err := s.RecordRun("20260820-100000", runResults(300)); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := s.RecordRun("20260825-100000", runResults(450)); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	series, err := s.ScenarioSeries(results.ScenarioStress, 0)
	if err != nil {
		t.Fatalf("ScenarioSeries: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("got %d rows, want 2", len(series))
	}
	if series[0].RunID != "20260825-100000" {
		t.Errorf("first row run = %s, want newest", series[0].RunID)
	}
	if series[0].P95DurationMs != 900 {
		t.Errorf("stress p95 = %v, want 900", series[0].P95DurationMs)
	}
	if series[0].Scenario != results.ScenarioStress {
		t.Errorf("scenario = %s", series[0].Scenario)
	}

	empty, err := s.ScenarioSeries(results.ScenarioSoak, 0)
	if err != nil {
		t.Fatalf("ScenarioSeries soak: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("soak series = %+v, want empty", empty)
	}
}
