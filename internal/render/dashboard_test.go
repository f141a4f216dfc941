package render

import (
	"encoding/json"
	"testing"
	"time"

	"perfgate/internal/results"
)

func boolPtr(b bool) *bool { return &b }

func dashboardInput() map[results.Scenario]*results.Result {
	return map[results.Scenario]*results.Result{
		results.ScenarioBaseline: {
			Summary: results.Snapshot{
				AvgDurationMs: 120, P95DurationMs: 340, P99DurationMs: 610,
				ErrorRate: 0.012, RequestsPerSecond: 210.4, TotalRequests: 126240,
			},
			Analysis: results.Analysis{SystemStable: boolPtr(true)},
		},
		results.ScenarioStress: {
			Summary: results.Snapshot{
				AvgDurationMs: 400, P95DurationMs: 1200, P99DurationMs: 2500,
				ErrorRate: 0.12, RequestsPerSecond: 30, TotalRequests: 18000,
			},
			Analysis: results.Analysis{
				SystemStable:    boolPtr(false),
				Recommendations: []string{"Scale out the backend"},
			},
		},
	}
}

func TestBuildDashboard_Summary(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	d := BuildDashboard(now, dashboardInput())

	if d.GeneratedAt != "2026-08-25T12:00:00Z" {
		t.Errorf("generated_at = %q", d.GeneratedAt)
	}
	if d.Summary.TotalScenarios != 2 || d.Summary.Healthy != 1 || d.Summary.Degraded != 1 {
		t.Errorf("summary = %+v", d.Summary)
	}
}

func TestBuildDashboard_ScenarioCards(t *testing.T) {
	d := BuildDashboard(time.Now(), dashboardInput())

	base, ok := d.Scenarios["baseline"]
	if !ok {
		t.Fatal("baseline card missing")
	}
	if base.Status != "healthy" {
		t.Errorf("baseline status = %q", base.Status)
	}
	// Error rate is carried as a percentage in dashboard payloads.
	if base.Metrics.ErrorRate != 1.2 {
		t.Errorf("baseline error rate = %v, want 1.2", base.Metrics.ErrorRate)
	}
	if base.Metrics.TotalRequests != 126240 {
		t.Errorf("total requests = %d", base.Metrics.TotalRequests)
	}
	if base.Recommendations == nil {
		t.Error("recommendations must serialize as [], not null")
	}

	stress := d.Scenarios["stress"]
	if stress.Status != "degraded" {
		t.Errorf("stress status = %q", stress.Status)
	}
	if len(stress.Recommendations) != 1 {
		t.Errorf("stress recommendations = %+v", stress.Recommendations)
	}
}

func TestBuildDashboard_ChartsInCanonicalOrder(t *testing.T) {
	d := BuildDashboard(time.Now(), dashboardInput())

	if len(d.Charts.ResponseTimes) != 2 {
		t.Fatalf("response_times has %d points, want 2", len(d.Charts.ResponseTimes))
	}
	if d.Charts.ResponseTimes[0].Scenario != "baseline" || d.Charts.ResponseTimes[1].Scenario != "stress" {
		t.Errorf("chart order = %s, %s", d.Charts.ResponseTimes[0].Scenario, d.Charts.ResponseTimes[1].Scenario)
	}
	if d.Charts.ResponseTimes[1].P95 != 1200 {
		t.Errorf("stress p95 point = %v", d.Charts.ResponseTimes[1].P95)
	}
	if d.Charts.ErrorRates[1].Rate != 12 {
		t.Errorf("stress error rate point = %v, want 12", d.Charts.ErrorRates[1].Rate)
	}
	if d.Charts.Throughput[0].RPS != 210.4 {
		t.Errorf("baseline throughput point = %v", d.Charts.Throughput[0].RPS)
	}
}

func TestBuildDashboard_JSONShape(t *testing.T) {
	d := BuildDashboard(time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC), dashboardInput())
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"generated_at", "scenarios", "summary", "charts"} {
		if _, ok := m[key]; !ok {
			t.Errorf("payload missing top-level key %q", key)
		}
	}
}

func TestBuildDashboard_MissingStableFlagIsHealthy(t *testing.T) {
	res := map[results.Scenario]*results.Result{
		results.ScenarioSoak: {
			Summary: results.Snapshot{P95DurationMs: 280, RequestsPerSecond: 150},
		},
	}
	d := BuildDashboard(time.Now(), res)

	if d.Scenarios["soak"].Status != "healthy" {
		t.Errorf("soak status = %q, want healthy", d.Scenarios["soak"].Status)
	}
	if d.Summary.Healthy != 1 || d.Summary.Degraded != 0 {
		t.Errorf("summary = %+v", d.Summary)
	}
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := BuildDashboard(time.Now(), nil)
	if d.Summary.TotalScenarios != 0 {
		t.Errorf("summary = %+v", d.Summary)
	}
	if len(d.Scenarios) != 0 {
		t.Errorf("scenarios = %+v", d.Scenarios)
	}
}
