// Package render turns assembled analysis records into external artifacts:
// the improvements Markdown document and the dashboard JSON payload.
package render

import (
	"fmt"
	"sort"
	"strings"

	"perfgate/internal/analysis"
	"perfgate/internal/display"
	"perfgate/internal/format"
	"perfgate/internal/results"
)

// RenderImprovements produces the improvements.md document: issue summary,
// per-scenario metrics, issue details, the action plan with task checklists,
// and next steps. res supplies scenario-level recommendations and the
// breakpoint capacity estimate.
func RenderImprovements(report *analysis.Report, items []analysis.ActionItem, res map[results.Scenario]*results.Result) string {
	var b strings.Builder

	b.WriteString("# Load Test Analysis and Improvement Plan\n\n")
	b.WriteString("Generated: " + report.Timestamp + "\n\n")

	writeIssueSummary(&b, report)
	writeMetricsSummary(&b, report)
	writeIssueDetails(&b, report)
	writeActionPlan(&b, items)
	writeScenarioNotes(&b, res)
	writeNextSteps(&b)

	return b.String()
}

func writeIssueSummary(b *strings.Builder, report *analysis.Report) {
	b.WriteString("## 1. Summary\n\n")
	b.WriteString("### Detected Issues\n\n")
	for _, sev := range []analysis.Severity{
		analysis.SeverityCritical, analysis.SeverityHigh, analysis.SeverityMedium, analysis.SeverityLow,
	} {
		b.WriteString(fmt.Sprintf("- %s %s: %d\n",
			display.SeverityIcon(string(sev)), display.Severity(string(sev)), report.IssueCount[sev]))
	}
	b.WriteString("\n")
}

func writeMetricsSummary(b *strings.Builder, report *analysis.Report) {
	if len(report.MetricsSummary) == 0 {
		return
	}
	b.WriteString("### Performance Metrics\n\n")
	tbl := format.NewTable(format.Markdown)
	tbl.Header("Scenario", "Avg", "P95", "P99", "Error Rate", "Throughput")
	for _, sc := range results.Scenarios() {
		ms, ok := report.MetricsSummary[sc]
		if !ok {
			continue
		}
		tbl.Row(string(sc),
			format.FmtMillis(ms.AvgDurationMs),
			format.FmtMillis(ms.P95DurationMs),
			format.FmtMillis(ms.P99DurationMs),
			format.FmtPercent(ms.ErrorRate),
			format.FmtThroughput(ms.Throughput))
	}
	b.WriteString(tbl.String())
	b.WriteString("\n\n")
}

func writeIssueDetails(b *strings.Builder, report *analysis.Report) {
	b.WriteString("## 2. Issue Details\n\n")
	if len(report.Issues) == 0 {
		b.WriteString("No threshold violations detected. ✅\n\n")
		return
	}
	for _, issue := range report.Issues {
		b.WriteString(fmt.Sprintf("### %s [%s] %s\n\n",
			display.SeverityIcon(string(issue.Severity)),
			strings.ToUpper(string(issue.Severity)),
			issue.Description))
		b.WriteString(fmt.Sprintf("- **Scenario**: %s\n", issue.Scenario))
		b.WriteString(fmt.Sprintf("- **Metric**: %s\n", display.Metric(issue.Metric)))
		b.WriteString(fmt.Sprintf("- **Current value**: %.2f\n", issue.Value))
		b.WriteString(fmt.Sprintf("- **Threshold**: %g\n\n", issue.Threshold))
	}
}

func writeActionPlan(b *strings.Builder, items []analysis.ActionItem) {
	b.WriteString("## 3. Action Plan\n\n")
	if len(items) == 0 {
		b.WriteString("No actions required. ✅\n\n")
		return
	}
	for _, item := range items {
		b.WriteString(fmt.Sprintf("### %s %s: %s\n\n",
			display.SeverityIcon(string(item.Priority)), item.ID, item.Title))
		b.WriteString("**Priority**: " + strings.ToUpper(string(item.Priority)) + "\n")
		b.WriteString("**Description**: " + item.Description + "\n")
		b.WriteString("**Affected scenarios**: " + strings.Join(item.AffectedScenarios, ", ") + "\n\n")

		b.WriteString("**Tasks**:\n")
		for _, task := range item.Tasks {
			b.WriteString("- [ ] " + task + "\n")
		}
		b.WriteString("\n**Target metrics**:\n")
		for _, key := range sortedKeys(item.Metrics) {
			b.WriteString(fmt.Sprintf("- %s: %.2f\n", key, item.Metrics[key]))
		}
		b.WriteString("\n")
	}
}

// writeScenarioNotes carries runner-side recommendations and the breakpoint
// capacity estimate into the document.
func writeScenarioNotes(b *strings.Builder, res map[results.Scenario]*results.Result) {
	var wrote bool
	for _, sc := range results.Scenarios() {
		r, ok := res[sc]
		if !ok {
			continue
		}
		recs := r.Analysis.Recommendations
		isBreakpoint := sc == results.ScenarioBreakpoint && r.Analysis.BreakingPoint != ""
		if len(recs) == 0 && !isBreakpoint {
			continue
		}
		if !wrote {
			b.WriteString("## 4. Scenario Notes\n\n")
			wrote = true
		}
		b.WriteString("### " + display.Scenario(string(sc)) + "\n\n")
		for _, rec := range recs {
			b.WriteString("- " + rec + "\n")
		}
		if isBreakpoint {
			b.WriteString("- Estimated breaking point: " + r.Analysis.BreakingPoint + "\n")
			if cp := r.Analysis.CapacityPlanning; cp != nil {
				if cp.RecommendedMaxLoad != "" {
					b.WriteString("- Recommended max load: " + cp.RecommendedMaxLoad + "\n")
				}
				if cp.ScaleTrigger != "" {
					b.WriteString("- Scale trigger: " + cp.ScaleTrigger + "\n")
				}
			}
		}
		b.WriteString("\n")
	}
}

func writeNextSteps(b *strings.Builder) {
	b.WriteString("## Next Steps\n\n")
	b.WriteString("1. Review the action plan and confirm priorities.\n")
	b.WriteString("2. Start with critical and high priority items.\n")
	b.WriteString("3. Re-run the same test suite after applying changes.\n")
	b.WriteString("4. Verify improvement and update this document.\n\n")
	b.WriteString("---\n")
	b.WriteString("*This document is generated automatically. Compare with earlier runs under `reports/history/`.*\n")
}

// sortedKeys orders metric keys alphabetically, so current_* lands before
// target_*, which reads naturally.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
