package analysis

import (
	"sort"

	"perfgate/internal/results"
)

// playbook is the static remediation checklist for one issue category. Tasks
// are a fixed playbook per category, not derived from the specific issues.
type playbook struct {
	ID          string
	Title       string
	Description string
	Tasks       []string
	CurrentKey  string // metrics key for the worst observed value
	TargetKey   string // metrics key for the configured target
}

var playbooks = map[IssueType]playbook{
	IssueLatency: {
		ID:          "ACTION-001",
		Title:       "Reduce response times",
		Description: "High response times detected.",
		Tasks: []string{
			"Profile backend server response times",
			"Review database query optimization",
			"Implement or improve caching strategy",
			"Review connection pooling configuration",
		},
		CurrentKey: "current_p95",
		TargetKey:  "target_p95",
	},
	IssueReliability: {
		ID:          "ACTION-002",
		Title:       "Improve reliability",
		Description: "Elevated error rate detected.",
		Tasks: []string{
			"Analyze error logs and identify root causes",
			"Strengthen backend health checks",
			"Review retry logic and circuit breakers",
			"Tune timeout configuration",
		},
		CurrentKey: "current_error_rate",
		TargetKey:  "target_error_rate",
	},
	IssuePerformance: {
		ID:          "ACTION-003",
		Title:       "Raise throughput",
		Description: "Throughput below target.",
		Tasks: []string{
			"Review and tune concurrency settings",
			"Check resource limits (CPU, memory)",
			"Review load balancing strategy",
			"Consider horizontal scaling",
		},
		CurrentKey: "current_throughput",
		TargetKey:  "target_throughput",
	},
}

// planOrder fixes action item emission order (and their IDs).
var planOrder = []IssueType{IssueLatency, IssueReliability, IssuePerformance}

// Planner groups issues into prioritized action items against a fixed
// threshold set.
type Planner struct {
	thresholds Thresholds
}

// NewPlanner returns a Planner bound to the given threshold set.
func NewPlanner(t Thresholds) *Planner {
	return &Planner{thresholds: t}
}

// Plan groups issues by category into at most one ActionItem per category,
// emitted in fixed ID order for categories with at least one issue.
func (p *Planner) Plan(issues []Issue) []ActionItem {
	groups := make(map[IssueType][]Issue)
	for _, is := range issues {
		groups[is.Type] = append(groups[is.Type], is)
	}

	var items []ActionItem
	for _, typ := range planOrder {
		group := groups[typ]
		if len(group) == 0 {
			continue
		}
		items = append(items, p.planGroup(typ, group))
	}
	return items
}

func (p *Planner) planGroup(typ IssueType, group []Issue) ActionItem {
	pb := playbooks[typ]
	return ActionItem{
		ID:                pb.ID,
		Title:             pb.Title,
		Priority:          groupPriority(typ, group),
		Description:       pb.Description,
		Tasks:             pb.Tasks,
		AffectedScenarios: affectedScenarios(group),
		Metrics: map[string]float64{
			pb.CurrentKey: worstValue(typ, group),
			pb.TargetKey:  p.target(typ),
		},
	}
}

// groupPriority derives the item priority from the worst issue in the group.
// The mapping is asymmetric per category: reliability is never downgraded
// below high, and performance has no tier above medium.
func groupPriority(typ IssueType, group []Issue) Priority {
	anyCritical := false
	for _, is := range group {
		if is.Severity == SeverityCritical {
			anyCritical = true
			break
		}
	}
	switch typ {
	case IssueLatency:
		if anyCritical {
			return PriorityHigh
		}
		return PriorityMedium
	case IssueReliability:
		if anyCritical {
			return PriorityCritical
		}
		return PriorityHigh
	default: // IssuePerformance
		return PriorityMedium
	}
}

// worstValue is the max observed value for cost metrics and the min for
// throughput (where lower is worse).
func worstValue(typ IssueType, group []Issue) float64 {
	worst := group[0].Value
	for _, is := range group[1:] {
		if typ == IssuePerformance {
			if is.Value < worst {
				worst = is.Value
			}
		} else if is.Value > worst {
			worst = is.Value
		}
	}
	return worst
}

func (p *Planner) target(typ IssueType) float64 {
	switch typ {
	case IssueLatency:
		return p.thresholds.P95Ms
	case IssueReliability:
		return p.thresholds.ErrorRate
	default:
		return p.thresholds.MinThroughput
	}
}

// affectedScenarios returns the de-duplicated, sorted scenario names
// contributing to the group.
func affectedScenarios(group []Issue) []string {
	seen := make(map[results.Scenario]bool)
	var names []string
	for _, is := range group {
		if seen[is.Scenario] {
			continue
		}
		seen[is.Scenario] = true
		names = append(names, string(is.Scenario))
	}
	sort.Strings(names)
	return names
}
