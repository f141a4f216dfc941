package analysis

import (
	"fmt"

	"perfgate/internal/results"
)

// DefaultHistoryLimit caps how many archived runs a trend pass considers.
const DefaultHistoryLimit = 10

// Degradation/improvement bounds for P95 drift against the historical mean.
const (
	p95DegradedFactor = 1.2
	p95ImprovedFactor = 0.8
)

// Error-rate drift needs both a relative jump and an absolute floor: a
// near-zero historical baseline must not trigger a "200% increase" alert on
// noise.
const (
	errorDegradedFactor = 2.0
	errorAbsoluteFloor  = 0.01
	errorMeanFloor      = 0.001 // divisor floor when reporting the jump
)

// HistorySource is what the trend analyzer needs from the snapshot store.
type HistorySource interface {
	Load(scenario results.Scenario) (*results.Result, error)
	LoadHistory(scenario results.Scenario, limit int) ([]results.HistoryRecord, error)
}

// TrendAnalyzer classifies directional drift of a scenario's current snapshot
// against its recent history.
type TrendAnalyzer struct {
	src   HistorySource
	limit int
}

// NewTrendAnalyzer returns a TrendAnalyzer reading up to historyLimit
// archived runs per scenario (DefaultHistoryLimit if <= 0).
func NewTrendAnalyzer(src HistorySource, historyLimit int) *TrendAnalyzer {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &TrendAnalyzer{src: src, limit: historyLimit}
}

// Analyze compares scenario's current snapshot against its history. A missing
// current snapshot yields a report with the Error field set, not a Go error.
// Empty history yields zero trend entries regardless of current values.
func (a *TrendAnalyzer) Analyze(scenario results.Scenario) (*TrendReport, error) {
	current, err := a.src.Load(scenario)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return &TrendReport{
			Scenario: scenario,
			Error:    fmt.Sprintf("no current results for %s", scenario),
		}, nil
	}

	report := &TrendReport{
		Scenario: scenario,
		Current: &TrendCurrent{
			Timestamp:   current.Timestamp,
			AvgDuration: current.Summary.AvgDurationMs,
			P95Duration: current.Summary.P95DurationMs,
			ErrorRate:   current.Summary.ErrorRate,
		},
	}

	history, err := a.src.LoadHistory(scenario, a.limit)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return report, nil
	}

	a.analyzeP95(report, current.Summary.P95DurationMs, history)
	a.analyzeErrorRate(report, current.Summary.ErrorRate, history)
	return report, nil
}

func (a *TrendAnalyzer) analyzeP95(report *TrendReport, current float64, history []results.HistoryRecord) {
	mean := meanOf(history, func(r results.HistoryRecord) float64 {
		return r.Result.Summary.P95DurationMs
	})
	if mean <= 0 {
		return // no usable historical signal
	}

	switch {
	case current > mean*p95DegradedFactor:
		report.Trends = append(report.Trends, Trend{
			Metric:    "p95_duration",
			Direction: DirectionDegraded,
			Change:    fmt.Sprintf("+%.1f%%", (current/mean-1)*100),
			Baseline:  fmt.Sprintf("%.0fms", mean),
		})
		report.Recommendations = append(report.Recommendations,
			"P95 latency has increased significantly. Investigate recent changes.")
	case current < mean*p95ImprovedFactor:
		report.Trends = append(report.Trends, Trend{
			Metric:    "p95_duration",
			Direction: DirectionImproved,
			Change:    fmt.Sprintf("%.1f%%", (1-current/mean)*100),
		})
	}
}

func (a *TrendAnalyzer) analyzeErrorRate(report *TrendReport, current float64, history []results.HistoryRecord) {
	mean := meanOf(history, func(r results.HistoryRecord) float64 {
		return r.Result.Summary.ErrorRate
	})

	if current > mean*errorDegradedFactor && current > errorAbsoluteFloor {
		divisor := mean
		if divisor < errorMeanFloor {
			divisor = errorMeanFloor
		}
		report.Trends = append(report.Trends, Trend{
			Metric:    "error_rate",
			Direction: DirectionDegraded,
			Change:    fmt.Sprintf("+%.1f%%", (current/divisor-1)*100),
		})
		report.Recommendations = append(report.Recommendations,
			"Error rate has increased. Check backend health and logs.")
	}
}

func meanOf(history []results.HistoryRecord, f func(results.HistoryRecord) float64) float64 {
	if len(history) == 0 {
		return 0
	}
	var sum float64
	for _, h := range history {
		sum += f(h)
	}
	return sum / float64(len(history))
}
