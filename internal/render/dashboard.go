package render

import (
	"time"

	"perfgate/internal/results"
)

// Dashboard is the JSON payload consumed by the results dashboard.
type Dashboard struct {
	GeneratedAt string                       `json:"generated_at"`
	Scenarios   map[string]DashboardScenario `json:"scenarios"`
	Summary     DashboardSummary             `json:"summary"`
	Charts      DashboardCharts              `json:"charts"`
}

// DashboardScenario is one scenario's health card.
type DashboardScenario struct {
	Status          string           `json:"status"` // "healthy" or "degraded"
	Metrics         DashboardMetrics `json:"metrics"`
	Recommendations []string         `json:"recommendations"`
}

// DashboardMetrics carries a scenario's headline numbers. ErrorRate is a
// percentage here, not a fraction.
type DashboardMetrics struct {
	AvgResponseTime float64 `json:"avg_response_time"`
	P95ResponseTime float64 `json:"p95_response_time"`
	P99ResponseTime float64 `json:"p99_response_time"`
	ErrorRate       float64 `json:"error_rate"`
	Throughput      float64 `json:"throughput"`
	TotalRequests   int64   `json:"total_requests"`
}

// DashboardSummary is the fleet-level health count.
type DashboardSummary struct {
	TotalScenarios int `json:"total_scenarios"`
	Healthy        int `json:"healthy"`
	Degraded       int `json:"degraded"`
}

// DashboardCharts holds the per-chart series, one point per scenario in
// canonical order.
type DashboardCharts struct {
	ResponseTimes []ResponseTimePoint `json:"response_times"`
	ErrorRates    []ErrorRatePoint    `json:"error_rates"`
	Throughput    []ThroughputPoint   `json:"throughput"`
}

// ResponseTimePoint is one scenario's latency chart entry.
type ResponseTimePoint struct {
	Scenario string  `json:"scenario"`
	Avg      float64 `json:"avg"`
	P95      float64 `json:"p95"`
	P99      float64 `json:"p99"`
}

// ErrorRatePoint is one scenario's error-rate chart entry (percentage).
type ErrorRatePoint struct {
	Scenario string  `json:"scenario"`
	Rate     float64 `json:"rate"`
}

// ThroughputPoint is one scenario's throughput chart entry.
type ThroughputPoint struct {
	Scenario string  `json:"scenario"`
	RPS      float64 `json:"rps"`
}

// BuildDashboard converts the latest results into the dashboard payload.
// A scenario is healthy when its runner marked the system stable.
func BuildDashboard(now time.Time, res map[results.Scenario]*results.Result) *Dashboard {
	d := &Dashboard{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Scenarios:   make(map[string]DashboardScenario, len(res)),
		Summary:     DashboardSummary{TotalScenarios: len(res)},
	}

	for _, sc := range results.Scenarios() {
		r, ok := res[sc]
		if !ok {
			continue
		}
		sum := r.Summary

		status := "healthy"
		if r.Analysis.Stable() {
			d.Summary.Healthy++
		} else {
			status = "degraded"
			d.Summary.Degraded++
		}

		recs := r.Analysis.Recommendations
		if recs == nil {
			recs = []string{}
		}
		d.Scenarios[string(sc)] = DashboardScenario{
			Status: status,
			Metrics: DashboardMetrics{
				AvgResponseTime: sum.AvgDurationMs,
				P95ResponseTime: sum.P95DurationMs,
				P99ResponseTime: sum.P99DurationMs,
				ErrorRate:       sum.ErrorRate * 100,
				Throughput:      sum.RequestsPerSecond,
				TotalRequests:   sum.TotalRequests,
			},
			Recommendations: recs,
		}

		d.Charts.ResponseTimes = append(d.Charts.ResponseTimes, ResponseTimePoint{
			Scenario: string(sc), Avg: sum.AvgDurationMs, P95: sum.P95DurationMs, P99: sum.P99DurationMs,
		})
		d.Charts.ErrorRates = append(d.Charts.ErrorRates, ErrorRatePoint{
			Scenario: string(sc), Rate: sum.ErrorRate * 100,
		})
		d.Charts.Throughput = append(d.Charts.Throughput, ThroughputPoint{
			Scenario: string(sc), RPS: sum.RequestsPerSecond,
		})
	}

	return d
}
