// Package mcp exposes the feedback engine over the Model Context Protocol so
// editor agents can run analysis passes and query trends without shelling out.
package mcp

import (
	"context"
	"fmt"

	"perfgate/internal/analysis"
	"perfgate/internal/config"
	"perfgate/internal/logging"
	"perfgate/internal/results"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server around one perfgate configuration.
// Each tool call re-reads the reports directory, so a server started once
// keeps seeing fresh results as test runs land.
type Server struct {
	MCPServer *sdkmcp.Server
	Config    *config.Config
}

// NewServer creates an MCP server with feedback, trend, baseline, and status
// tools bound to cfg.
func NewServer(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Server{Config: cfg}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "perfgate", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "run_feedback",
		Description: "Run a full feedback pass over the latest results: threshold evaluation, action planning, and baseline comparison.",
	}, s.handleRunFeedback)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_trends",
		Description: "Compare one scenario's current results against its archived history and report directional drift.",
	}, s.handleGetTrends)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "compare_baseline",
		Description: "Compare the latest results against the pinned baseline reference. Creates the reference on first use.",
	}, s.handleCompareBaseline)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_status",
		Description: "Summarize the latest run per scenario: headline metrics and runner stability verdict.",
	}, s.handleGetStatus)
}

// --- Tool input/output types ---

type runFeedbackInput struct {
	ReportsDir string `json:"reports_dir,omitempty" jsonschema:"reports directory override (default from server config)"`
}

type runFeedbackOutput struct {
	Timestamp   string                `json:"timestamp"`
	Scenarios   int                   `json:"scenarios"`
	IssueCount  map[string]int        `json:"issue_count"`
	Issues      []analysis.Issue      `json:"issues"`
	ActionItems []analysis.ActionItem `json:"action_items"`
	Comparison  *analysis.Comparison  `json:"comparison,omitempty"`
}

type getTrendsInput struct {
	Scenario string `json:"scenario" jsonschema:"scenario name (baseline, spike, stress, soak, breakpoint)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"max archived runs to read (default 10)"`
}

type compareBaselineInput struct {
	ReportsDir string `json:"reports_dir,omitempty" jsonschema:"reports directory override (default from server config)"`
}

type compareBaselineOutput struct {
	Message    string               `json:"message,omitempty"`
	Comparison *analysis.Comparison `json:"comparison,omitempty"`
}

type getStatusInput struct{}

type scenarioStatus struct {
	Scenario      string  `json:"scenario"`
	Stable        bool    `json:"stable"`
	P95DurationMs float64 `json:"p95_duration_ms"`
	ErrorRate     float64 `json:"error_rate"`
	Throughput    float64 `json:"throughput"`
	Timestamp     string  `json:"timestamp,omitempty"`
}

type getStatusOutput struct {
	Scenarios []scenarioStatus `json:"scenarios"`
}

// --- Tool handlers ---

func (s *Server) store(dirOverride string) *results.FileStore {
	dir := s.Config.ReportsDir
	if dirOverride != "" {
		dir = dirOverride
	}
	return results.NewFileStore(dir)
}

func (s *Server) handleRunFeedback(ctx context.Context, _ *sdkmcp.CallToolRequest, input runFeedbackInput) (*sdkmcp.CallToolResult, runFeedbackOutput, error) {
	logger := logging.New("mcp")
	src := s.store(input.ReportsDir)
	engine := analysis.NewEngine(src, s.Config.Thresholds, s.Config.BaselineReference)

	fb, err := engine.Run()
	if err != nil {
		return nil, runFeedbackOutput{}, fmt.Errorf("run_feedback: %w", err)
	}
	logger.Info("feedback pass complete",
		"scenarios", len(fb.Report.MetricsSummary),
		"issues", len(fb.Report.Issues),
		"actions", len(fb.ActionItems))

	counts := make(map[string]int, len(fb.Report.IssueCount))
	for sev, n := range fb.Report.IssueCount {
		counts[string(sev)] = n
	}

	return nil, runFeedbackOutput{
		Timestamp:   fb.Report.Timestamp,
		Scenarios:   len(fb.Report.MetricsSummary),
		IssueCount:  counts,
		Issues:      fb.Report.Issues,
		ActionItems: fb.ActionItems,
		Comparison:  fb.Comparison,
	}, nil
}

func (s *Server) handleGetTrends(ctx context.Context, _ *sdkmcp.CallToolRequest, input getTrendsInput) (*sdkmcp.CallToolResult, analysis.TrendReport, error) {
	sc := results.Scenario(input.Scenario)
	if !sc.Valid() {
		return nil, analysis.TrendReport{}, fmt.Errorf("unknown scenario %q", input.Scenario)
	}
	limit := input.Limit
	if limit <= 0 {
		limit = s.Config.HistoryLimit
	}

	analyzer := analysis.NewTrendAnalyzer(s.store(""), limit)
	report, err := analyzer.Analyze(sc)
	if err != nil {
		return nil, analysis.TrendReport{}, fmt.Errorf("get_trends: %w", err)
	}
	return nil, *report, nil
}

func (s *Server) handleCompareBaseline(ctx context.Context, _ *sdkmcp.CallToolRequest, input compareBaselineInput) (*sdkmcp.CallToolResult, compareBaselineOutput, error) {
	src := s.store(input.ReportsDir)
	res, err := src.LoadAll()
	if err != nil {
		return nil, compareBaselineOutput{}, fmt.Errorf("compare_baseline: %w", err)
	}

	comparator := analysis.NewBaselineComparator(s.Config.BaselineReference)
	cmp, err := comparator.Compare(res, results.ScenarioBaseline)
	if err != nil {
		return nil, compareBaselineOutput{}, fmt.Errorf("compare_baseline: %w", err)
	}
	if cmp == nil {
		return nil, compareBaselineOutput{Message: "no baseline results to compare"}, nil
	}
	return nil, compareBaselineOutput{Message: cmp.Message, Comparison: cmp}, nil
}

func (s *Server) handleGetStatus(ctx context.Context, _ *sdkmcp.CallToolRequest, _ getStatusInput) (*sdkmcp.CallToolResult, getStatusOutput, error) {
	res, err := s.store("").LoadAll()
	if err != nil {
		return nil, getStatusOutput{}, fmt.Errorf("get_status: %w", err)
	}

	out := getStatusOutput{Scenarios: []scenarioStatus{}}
	for _, sc := range results.Scenarios() {
		r, ok := res[sc]
		if !ok {
			continue
		}
		out.Scenarios = append(out.Scenarios, scenarioStatus{
			Scenario:      string(sc),
			Stable:        r.Analysis.Stable(),
			P95DurationMs: r.Summary.P95DurationMs,
			ErrorRate:     r.Summary.ErrorRate,
			Throughput:    r.Summary.RequestsPerSecond,
			Timestamp:     r.Timestamp,
		})
	}
	return nil, out, nil
}
