// Package results models persisted load-test run documents and loads them
// from the reports directory layout (latest + history).
package results

// Scenario is a named load-test profile.
type Scenario string

const (
	ScenarioBaseline   Scenario = "baseline"
	ScenarioSpike      Scenario = "spike"
	ScenarioStress     Scenario = "stress"
	ScenarioSoak       Scenario = "soak"
	ScenarioBreakpoint Scenario = "breakpoint"
)

// Scenarios returns the fixed scenario set in canonical order.
func Scenarios() []Scenario {
	return []Scenario{ScenarioBaseline, ScenarioSpike, ScenarioStress, ScenarioSoak, ScenarioBreakpoint}
}

// Valid reports whether s is one of the known scenarios.
func (s Scenario) Valid() bool {
	for _, known := range Scenarios() {
		if s == known {
			return true
		}
	}
	return false
}

// Snapshot is the measured metrics for one scenario from one test run.
// Missing fields unmarshal to zero; the analysis layer treats zero as "absent".
type Snapshot struct {
	AvgDurationMs     float64 `json:"avg_duration_ms"`
	P95DurationMs     float64 `json:"p95_duration_ms"`
	P99DurationMs     float64 `json:"p99_duration_ms"`
	ErrorRate         float64 `json:"error_rate"` // 0-1 fraction
	RequestsPerSecond float64 `json:"requests_per_second"`
	TotalRequests     int64   `json:"total_requests"`
}

// CapacityPlanning is the breakpoint scenario's capacity estimate.
type CapacityPlanning struct {
	RecommendedMaxLoad string `json:"recommended_max_load,omitempty"`
	ScaleTrigger       string `json:"scale_trigger,omitempty"`
}

// Analysis is the runner-side verdict attached to a result document.
// SystemStable is a pointer so a document that omits the flag is
// distinguishable from one that reports instability.
type Analysis struct {
	Recommendations  []string          `json:"recommendations"`
	SystemStable     *bool             `json:"system_stable,omitempty"`
	BreakingPoint    string            `json:"breaking_point,omitempty"`
	CapacityPlanning *CapacityPlanning `json:"capacity_planning,omitempty"`
}

// Stable reports the runner's verdict. A document without the flag counts
// as stable.
func (a Analysis) Stable() bool {
	return a.SystemStable == nil || *a.SystemStable
}

// Result is one scenario's persisted run document. Immutable once loaded.
type Result struct {
	Timestamp string   `json:"timestamp"`
	Summary   Snapshot `json:"summary"`
	Analysis  Analysis `json:"analysis"`
}

// HistoryRecord is an archived Result tagged with its run ID (the archival
// directory name, a sortable timestamp).
type HistoryRecord struct {
	RunID  string
	Result Result
}
