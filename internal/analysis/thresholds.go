package analysis

import (
	"fmt"

	"perfgate/internal/results"
)

// Thresholds is the immutable threshold set for one analysis pass. Passed in
// at construction so tests and per-environment configs can carry their own
// sets without process-wide state.
type Thresholds struct {
	P95Ms         float64 `json:"p95_duration_ms" yaml:"p95_duration_ms"`
	P99Ms         float64 `json:"p99_duration_ms" yaml:"p99_duration_ms"`
	ErrorRate     float64 `json:"error_rate" yaml:"error_rate"`
	MinThroughput float64 `json:"min_throughput" yaml:"min_throughput"`
}

// DefaultThresholds returns the fixed default threshold set.
func DefaultThresholds() Thresholds {
	return Thresholds{
		P95Ms:         500,
		P99Ms:         1000,
		ErrorRate:     0.02, // 2%
		MinThroughput: 50,   // req/s
	}
}

// criticalErrorRate is the absolute error-rate cutoff for critical severity.
// Deliberately an absolute 10%, not a multiple of the configured threshold.
const criticalErrorRate = 0.10

// Evaluator applies a fixed threshold set to snapshots.
type Evaluator struct {
	thresholds Thresholds
}

// NewEvaluator returns an Evaluator bound to the given threshold set.
func NewEvaluator(t Thresholds) *Evaluator {
	return &Evaluator{thresholds: t}
}

// Thresholds returns the evaluator's threshold set.
func (e *Evaluator) Thresholds() Thresholds { return e.thresholds }

// Evaluate applies every threshold rule independently to one snapshot.
// A snapshot may produce 0-4 issues.
func (e *Evaluator) Evaluate(scenario results.Scenario, snap results.Snapshot) []Issue {
	t := e.thresholds
	var issues []Issue

	if snap.P95DurationMs > t.P95Ms {
		issues = append(issues, Issue{
			Severity:  latencySeverity(snap.P95DurationMs, t.P95Ms),
			Scenario:  scenario,
			Type:      IssueLatency,
			Metric:    "p95_duration_ms",
			Value:     snap.P95DurationMs,
			Threshold: t.P95Ms,
			Description: fmt.Sprintf("P95 latency above threshold (%.0fms > %.0fms)",
				snap.P95DurationMs, t.P95Ms),
		})
	}

	if snap.P99DurationMs > t.P99Ms {
		issues = append(issues, Issue{
			Severity:  latencySeverity(snap.P99DurationMs, t.P99Ms),
			Scenario:  scenario,
			Type:      IssueLatency,
			Metric:    "p99_duration_ms",
			Value:     snap.P99DurationMs,
			Threshold: t.P99Ms,
			Description: fmt.Sprintf("P99 latency above threshold (%.0fms > %.0fms)",
				snap.P99DurationMs, t.P99Ms),
		})
	}

	if snap.ErrorRate > t.ErrorRate {
		sev := SeverityHigh
		if snap.ErrorRate > criticalErrorRate {
			sev = SeverityCritical
		}
		issues = append(issues, Issue{
			Severity:  sev,
			Scenario:  scenario,
			Type:      IssueReliability,
			Metric:    "error_rate",
			Value:     snap.ErrorRate,
			Threshold: t.ErrorRate,
			Description: fmt.Sprintf("error rate above threshold (%.2f%% > %.2f%%)",
				snap.ErrorRate*100, t.ErrorRate*100),
		})
	}

	// Throughput of exactly 0 means the scenario did not execute; only a
	// positive-but-low value is an underperformance issue.
	if snap.RequestsPerSecond > 0 && snap.RequestsPerSecond < t.MinThroughput {
		issues = append(issues, Issue{
			Severity:  SeverityMedium,
			Scenario:  scenario,
			Type:      IssuePerformance,
			Metric:    "throughput",
			Value:     snap.RequestsPerSecond,
			Threshold: t.MinThroughput,
			Description: fmt.Sprintf("throughput below minimum (%.1f < %.0f req/s)",
				snap.RequestsPerSecond, t.MinThroughput),
		})
	}

	return issues
}

// EvaluateAll runs Evaluate over every scenario result in canonical scenario
// order, so issue ordering is stable across passes.
func (e *Evaluator) EvaluateAll(res map[results.Scenario]*results.Result) []Issue {
	var issues []Issue
	for _, sc := range results.Scenarios() {
		r, ok := res[sc]
		if !ok {
			continue
		}
		issues = append(issues, e.Evaluate(sc, r.Summary)...)
	}
	return issues
}

// latencySeverity applies the shared latency tier rule: critical beyond twice
// the threshold, high otherwise.
func latencySeverity(value, threshold float64) Severity {
	if value > 2*threshold {
		return SeverityCritical
	}
	return SeverityHigh
}
