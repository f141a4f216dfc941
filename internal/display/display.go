// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output, markdown reports, logs, and docs.
// Keep raw codes for JSON fields, map keys, and equality comparisons.
package display

// --- Severities ---

var severities = map[string]string{
	"critical": "Critical",
	"high":     "High",
	"medium":   "Medium",
	"low":      "Low",
}

var severityIcons = map[string]string{
	"critical": "🔴",
	"high":     "🟠",
	"medium":   "🟡",
	"low":      "🟢",
}

// Severity returns the human-readable name for a severity code.
// Unknown codes are returned as-is.
func Severity(code string) string {
	if name, ok := severities[code]; ok {
		return name
	}
	return code
}

// SeverityIcon returns the colored indicator for a severity code,
// or "" for unknown codes.
func SeverityIcon(code string) string {
	return severityIcons[code]
}

// --- Priorities ---

// Priority returns the human-readable name for an action priority code.
// Priorities share the severity vocabulary.
func Priority(code string) string {
	return Severity(code)
}

// --- Trend directions ---

var directions = map[string]string{
	"degraded":  "Degraded",
	"improved":  "Improved",
	"unchanged": "Unchanged",
}

var directionIcons = map[string]string{
	"degraded":  "📉",
	"improved":  "📈",
	"unchanged": "➡️",
}

// Direction returns the human-readable name for a trend direction.
func Direction(code string) string {
	if name, ok := directions[code]; ok {
		return name
	}
	return code
}

// DirectionIcon returns the indicator for a trend direction,
// or "" for unknown codes.
func DirectionIcon(code string) string {
	return directionIcons[code]
}

// --- Metrics ---

var metrics = map[string]string{
	"avg_duration_ms":     "Average Latency",
	"p95_duration_ms":     "P95 Latency",
	"p99_duration_ms":     "P99 Latency",
	"p95_duration":        "P95 Latency",
	"error_rate":          "Error Rate",
	"throughput":          "Throughput",
	"requests_per_second": "Throughput",
	"total_requests":      "Total Requests",
}

// Metric returns the human-readable name for a metric key.
// "p95_duration_ms" -> "P95 Latency".
func Metric(key string) string {
	if name, ok := metrics[key]; ok {
		return name
	}
	return key
}

// --- Scenarios ---

var scenarios = map[string]string{
	"baseline":   "Baseline",
	"spike":      "Spike",
	"stress":     "Stress",
	"soak":       "Soak",
	"breakpoint": "Breakpoint",
}

// Scenario returns the human-readable name for a scenario code.
func Scenario(code string) string {
	if name, ok := scenarios[code]; ok {
		return name
	}
	return code
}

// --- Issue types ---

var issueTypes = map[string]string{
	"latency":     "Latency",
	"reliability": "Reliability",
	"performance": "Performance",
}

// IssueType returns the human-readable name for an issue type code.
func IssueType(code string) string {
	if name, ok := issueTypes[code]; ok {
		return name
	}
	return code
}
