// Package analysis is the decision core: threshold evaluation, trend
// detection, action planning, baseline comparison, and report assembly over
// immutable result snapshots. All operations are pure transformations except
// the baseline comparator's one-time reference creation.
package analysis

import "perfgate/internal/results"

// Severity classifies a single detected issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Priority ranks an action item. Same scale as Severity but derived per
// category, not copied from any one issue.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// IssueType is the closed set of issue categories. The metric carried by an
// issue is determined by its type: latency issues carry a duration metric,
// reliability issues an error rate, performance issues a throughput value.
type IssueType string

const (
	IssueLatency     IssueType = "latency"
	IssueReliability IssueType = "reliability"
	IssuePerformance IssueType = "performance"
)

// Issue is one detected threshold violation. Produced fresh each analysis
// pass, never persisted individually, never mutated after creation.
type Issue struct {
	Severity    Severity         `json:"severity"`
	Scenario    results.Scenario `json:"scenario"`
	Type        IssueType        `json:"type"`
	Metric      string           `json:"metric"`
	Value       float64          `json:"value"`
	Threshold   float64          `json:"threshold"`
	Description string           `json:"description"`
}

// ActionItem is a grouped, prioritized remediation unit synthesized from all
// issues of one category. Exactly one per non-empty category per run.
type ActionItem struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Priority          Priority           `json:"priority"`
	Description       string             `json:"description"`
	Tasks             []string           `json:"tasks"`
	AffectedScenarios []string           `json:"affected_scenarios"`
	Metrics           map[string]float64 `json:"metrics"`
}

// Direction labels how a metric moved relative to its cost orientation.
type Direction string

const (
	DirectionImproved  Direction = "improved"
	DirectionDegraded  Direction = "degraded"
	DirectionUnchanged Direction = "unchanged"
)

// MetricChange is the percentage drift of one metric against the baseline
// reference. Value is the percent magnitude (always non-negative).
type MetricChange struct {
	Value     float64   `json:"value"`
	Direction Direction `json:"direction"`
	Current   float64   `json:"current"`
	Baseline  float64   `json:"baseline"`
}

// Comparison is the baseline drift record. On the call that creates the
// reference, only Message is set and no changes are computed.
type Comparison struct {
	Message          string        `json:"message,omitempty"`
	P95Change        *MetricChange `json:"p95_change,omitempty"`
	ErrorRateChange  *MetricChange `json:"error_rate_change,omitempty"`
	ThroughputChange *MetricChange `json:"throughput_change,omitempty"`
}

// Trend is one directional drift entry in a scenario's trend report.
type Trend struct {
	Metric    string    `json:"metric"`
	Direction Direction `json:"direction"`
	Change    string    `json:"change"`             // e.g. "+23.4%"
	Baseline  string    `json:"baseline,omitempty"` // historical mean, e.g. "450ms"
}

// TrendCurrent echoes the current snapshot's headline metrics.
type TrendCurrent struct {
	Timestamp   string  `json:"timestamp"`
	AvgDuration float64 `json:"avg_duration"`
	P95Duration float64 `json:"p95_duration"`
	ErrorRate   float64 `json:"error_rate"`
}

// TrendReport is the outcome of comparing a scenario's current snapshot
// against its history. A missing current snapshot is reported via Error, not
// a Go error: absence is a normal outcome.
type TrendReport struct {
	Scenario        results.Scenario `json:"scenario"`
	Error           string           `json:"error,omitempty"`
	Current         *TrendCurrent    `json:"current,omitempty"`
	Trends          []Trend          `json:"trends"`
	Recommendations []string         `json:"recommendations"`
}

// MetricsSummary is the per-scenario metric digest carried in the report.
type MetricsSummary struct {
	AvgDurationMs float64 `json:"avg_duration_ms"`
	P95DurationMs float64 `json:"p95_duration_ms"`
	P99DurationMs float64 `json:"p99_duration_ms"`
	ErrorRate     float64 `json:"error_rate"`
	Throughput    float64 `json:"throughput"`
}

// Improvement carries a scenario-specific recommendation through the report.
type Improvement struct {
	Scenario       results.Scenario `json:"scenario"`
	Recommendation string           `json:"recommendation"`
}

// Report is the assembled analysis record consumed by external renderers.
type Report struct {
	Timestamp      string                              `json:"timestamp"`
	MetricsSummary map[results.Scenario]MetricsSummary `json:"metrics_summary"`
	Issues         []Issue                             `json:"issues"`
	Improvements   []Improvement                       `json:"improvements"`
	IssueCount     map[Severity]int                    `json:"issue_count"`
}
