package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"perfgate/internal/results"
	"perfgate/internal/store"
)

// runCLI executes the root command in-process and returns combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Package-level flag structs persist across invocations; reset the ones
	// tests depend on.
	analyzeFlags.outputDir = ""
	analyzeFlags.dashboard = false
	trendsFlags.limit = 0
	trendsFlags.jsonOut = false
	compareFlags.jsonOut = false
	statusFlags.markdown = false
	archiveFlags.runID = ""
	archiveFlags.dbPath = store.DefaultDBPath
	archiveFlags.noIndex = false
	archiveFlags.parallel = 4
	runsFlags.dbPath = store.DefaultDBPath
	runsFlags.limit = 20
	runsFlags.markdown = false

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// writeTestConfig writes a config file pointing at a fresh reports dir and
// returns both paths.
func writeTestConfig(t *testing.T) (configPath, reportsDir string) {
	t.Helper()
	dir := t.TempDir()
	reportsDir = filepath.Join(dir, "reports")
	configPath = filepath.Join(dir, "perfgate.yaml")
	content := fmt.Sprintf("reports_dir: %s\n", reportsDir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, reportsDir
}

func writeScenario(t *testing.T, reportsDir string, sc results.Scenario, r results.Result) {
	t.Helper()
	latest := filepath.Join(reportsDir, "latest")
	if err := os.MkdirAll(latest, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(latest, string(sc)+".json"), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func boolPtr(b bool) *bool { return &b }

func healthyBaseline() results.Result {
	return results.Result{
		Timestamp: "2026-08-25T10:00:00Z",
		Summary: results.Snapshot{
			AvgDurationMs: 120, P95DurationMs: 300, P99DurationMs: 500,
			ErrorRate: 0.005, RequestsPerSecond: 200, TotalRequests: 120000,
		},
		Analysis: results.Analysis{SystemStable: boolPtr(true)},
	}
}

func TestStatus_NoResults(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	out, err := runCLI(t, "--config", configPath, "status")
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No results") {
		t.Errorf("expected empty-state message, got:\n%s", out)
	}
}

func TestStatus_Table(t *testing.T) {
	configPath, reportsDir := writeTestConfig(t)
	writeScenario(t, reportsDir, results.ScenarioBaseline, healthyBaseline())

	out, err := runCLI(t, "--config", configPath, "status")
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Baseline") {
		t.Errorf("scenario row missing:\n%s", out)
	}
	if !strings.Contains(out, "300ms") || !strings.Contains(out, "200.0 req/s") {
		t.Errorf("metric cells missing:\n%s", out)
	}
}

func TestAnalyze_WritesArtifacts(t *testing.T) {
	configPath, reportsDir := writeTestConfig(t)
	writeScenario(t, reportsDir, results.ScenarioBaseline, healthyBaseline())
	writeScenario(t, reportsDir, results.ScenarioStress, results.Result{
		Summary: results.Snapshot{
			AvgDurationMs: 400, P95DurationMs: 1200, P99DurationMs: 2500,
			ErrorRate: 0.12, RequestsPerSecond: 30, TotalRequests: 18000,
		},
	})
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := runCLI(t, "--config", configPath, "analyze", "-o", outDir, "--dashboard")
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}

	for _, name := range []string{"analysis.json", "action_items.json", "baseline_comparison.json", "improvements.md", "dashboard.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("artifact %s not written: %v", name, err)
		}
	}
	if !strings.Contains(out, "Baseline reference created") {
		t.Errorf("expected baseline creation note:\n%s", out)
	}

	doc, err := os.ReadFile(filepath.Join(outDir, "improvements.md"))
	if err != nil {
		t.Fatalf("read improvements.md: %v", err)
	}
	if !strings.Contains(string(doc), "## 3. Action Plan") {
		t.Errorf("improvements.md incomplete:\n%s", doc)
	}
}

func TestAnalyze_NoResults(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	if _, err := runCLI(t, "--config", configPath, "analyze"); err == nil {
		t.Fatal("analyze over empty reports dir should fail")
	}
}

func TestCompare_CreatesThenComparesReference(t *testing.T) {
	configPath, reportsDir := writeTestConfig(t)
	writeScenario(t, reportsDir, results.ScenarioBaseline, healthyBaseline())

	out, err := runCLI(t, "--config", configPath, "compare")
	if err != nil {
		t.Fatalf("compare: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Baseline reference created") {
		t.Errorf("expected creation message:\n%s", out)
	}

	degraded := healthyBaseline()
	degraded.Summary.P95DurationMs = 450
	writeScenario(t, reportsDir, results.ScenarioBaseline, degraded)

	out, err = runCLI(t, "--config", configPath, "compare")
	if err != nil {
		t.Fatalf("second compare: %v\n%s", err, out)
	}
	if !strings.Contains(out, "P95 latency") || !strings.Contains(out, "Degraded") {
		t.Errorf("expected p95 drift line:\n%s", out)
	}
}

func TestTrends_QuietWithoutHistory(t *testing.T) {
	configPath, reportsDir := writeTestConfig(t)
	writeScenario(t, reportsDir, results.ScenarioBaseline, healthyBaseline())

	out, err := runCLI(t, "--config", configPath, "trends", "baseline")
	if err != nil {
		t.Fatalf("trends: %v\n%s", err, out)
	}
	if !strings.Contains(out, "stable against recent history") {
		t.Errorf("expected stable marker:\n%s", out)
	}
}

func TestTrends_UnknownScenario(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	if _, err := runCLI(t, "--config", configPath, "trends", "smoke"); err == nil {
		t.Fatal("unknown scenario should fail")
	}
}

func TestArchive_CopiesAndIndexes(t *testing.T) {
	configPath, reportsDir := writeTestConfig(t)
	writeScenario(t, reportsDir, results.ScenarioBaseline, healthyBaseline())
	dbPath := filepath.Join(t.TempDir(), "perfgate.db")

	out, err := runCLI(t, "--config", configPath, "archive", "--run-id", "20260825-120000", "--db", dbPath)
	if err != nil {
		t.Fatalf("archive: %v\n%s", err, out)
	}

	archived := filepath.Join(reportsDir, "history", "20260825-120000", "baseline.json")
	if _, err := os.Stat(archived); err != nil {
		t.Errorf("archived file missing: %v", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer st.Close()
	run, err := st.GetRun("20260825-120000")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run == nil || run.ScenarioCount != 1 {
		t.Errorf("indexed run = %+v", run)
	}
}

func TestArchive_RejectsPathSeparators(t *testing.T) {
	configPath, reportsDir := writeTestConfig(t)
	writeScenario(t, reportsDir, results.ScenarioBaseline, healthyBaseline())
	if _, err := runCLI(t, "--config", configPath, "archive", "--run-id", "../escape", "--no-index"); err == nil {
		t.Fatal("run ID with path separators should be rejected")
	}
}

func TestRuns_ListsNewestFirst(t *testing.T) {
	configPath, reportsDir := writeTestConfig(t)
	writeScenario(t, reportsDir, results.ScenarioBaseline, healthyBaseline())
	dbPath := filepath.Join(t.TempDir(), "perfgate.db")

	for _, runID := range []string{"20260820-120000", "20260825-120000"} {
		if out, err := runCLI(t, "--config", configPath, "archive", "--run-id", runID, "--db", dbPath); err != nil {
			t.Fatalf("archive %s: %v\n%s", runID, err, out)
		}
	}

	out, err := runCLI(t, "--config", configPath, "runs", "--db", dbPath)
	if err != nil {
		t.Fatalf("runs: %v\n%s", err, out)
	}
	newest := strings.Index(out, "20260825-120000")
	oldest := strings.Index(out, "20260820-120000")
	if newest == -1 || oldest == -1 {
		t.Fatalf("run rows missing:\n%s", out)
	}
	if newest > oldest {
		t.Errorf("runs not newest-first:\n%s", out)
	}
}

func TestRuns_ScenarioSeries(t *testing.T) {
	configPath, reportsDir := writeTestConfig(t)
	writeScenario(t, reportsDir, results.ScenarioBaseline, healthyBaseline())
	dbPath := filepath.Join(t.TempDir(), "perfgate.db")

	if out, err := runCLI(t, "--config", configPath, "archive", "--run-id", "20260825-130000", "--db", dbPath); err != nil {
		t.Fatalf("archive: %v\n%s", err, out)
	}

	out, err := runCLI(t, "--config", configPath, "runs", "baseline", "--db", dbPath)
	if err != nil {
		t.Fatalf("runs baseline: %v\n%s", err, out)
	}
	if !strings.Contains(out, "20260825-130000") || !strings.Contains(out, "300ms") {
		t.Errorf("series row missing:\n%s", out)
	}

	out, err = runCLI(t, "--config", configPath, "runs", "soak", "--db", dbPath)
	if err != nil {
		t.Fatalf("runs soak: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No archived runs for soak") {
		t.Errorf("expected empty-series message:\n%s", out)
	}
}

func TestArchive_ThenTrendsSeesHistory(t *testing.T) {
	configPath, reportsDir := writeTestConfig(t)
	fast := healthyBaseline()
	fast.Summary.P95DurationMs = 300
	writeScenario(t, reportsDir, results.ScenarioBaseline, fast)

	out, err := runCLI(t, "--config", configPath, "archive", "--run-id", "20260820-120000", "--no-index")
	if err != nil {
		t.Fatalf("archive: %v\n%s", err, out)
	}

	slow := healthyBaseline()
	slow.Summary.P95DurationMs = 600
	writeScenario(t, reportsDir, results.ScenarioBaseline, slow)

	out, err = runCLI(t, "--config", configPath, "trends", "baseline")
	if err != nil {
		t.Fatalf("trends: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Degraded") {
		t.Errorf("expected degraded p95 trend:\n%s", out)
	}
}
