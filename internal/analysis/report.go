package analysis

import (
	"time"

	"perfgate/internal/results"
)

// AssembleReport merges the latest results and their evaluated issues into
// one analysis record. Pure aggregation; all decision logic lives upstream.
func AssembleReport(now time.Time, res map[results.Scenario]*results.Result, issues []Issue) *Report {
	report := &Report{
		Timestamp:      now.Format(time.RFC3339),
		MetricsSummary: make(map[results.Scenario]MetricsSummary, len(res)),
		Issues:         issues,
		IssueCount: map[Severity]int{
			SeverityCritical: 0,
			SeverityHigh:     0,
			SeverityMedium:   0,
			SeverityLow:      0,
		},
	}

	for _, sc := range results.Scenarios() {
		r, ok := res[sc]
		if !ok {
			continue
		}
		report.MetricsSummary[sc] = MetricsSummary{
			AvgDurationMs: r.Summary.AvgDurationMs,
			P95DurationMs: r.Summary.P95DurationMs,
			P99DurationMs: r.Summary.P99DurationMs,
			ErrorRate:     r.Summary.ErrorRate,
			Throughput:    r.Summary.RequestsPerSecond,
		}
		for _, rec := range r.Analysis.Recommendations {
			report.Improvements = append(report.Improvements, Improvement{
				Scenario:       sc,
				Recommendation: rec,
			})
		}
	}

	for _, is := range issues {
		report.IssueCount[is.Severity]++
	}
	return report
}
