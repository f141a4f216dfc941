package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"perfgate/internal/analysis"
	"perfgate/internal/display"
	"perfgate/internal/logging"
	"perfgate/internal/render"
	"perfgate/internal/results"
)

var analyzeFlags struct {
	outputDir string
	dashboard bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a full feedback pass over the latest results",
	Long: `Loads the latest result snapshot for every scenario, evaluates thresholds,
plans remediation actions, compares against the pinned baseline reference,
and writes the artifacts:

  analysis.json             assembled report (issues, metrics, counts)
  action_items.json         prioritized action plan
  baseline_comparison.json  drift against the baseline reference
  improvements.md           human-readable improvement plan

On the first run, the baseline scenario's snapshot is pinned as the
reference; later runs report drift against it.`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeFlags.outputDir, "output", "o", "", "Artifact output directory (default: reports dir)")
	f.BoolVar(&analyzeFlags.dashboard, "dashboard", false, "Also write dashboard.json")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	logger := logging.New("analyze")
	src := results.NewFileStore(cfg.ReportsDir)
	engine := analysis.NewEngine(src, cfg.Thresholds, cfg.BaselineReference)

	fb, err := engine.Run()
	if err != nil {
		return fmt.Errorf("feedback pass: %w", err)
	}

	outDir := analyzeFlags.outputDir
	if outDir == "" {
		outDir = cfg.ReportsDir
	}

	if err := writeJSON(filepath.Join(outDir, "analysis.json"), fb.Report); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outDir, "action_items.json"), fb.ActionItems); err != nil {
		return err
	}
	if fb.Comparison != nil {
		if err := writeJSON(filepath.Join(outDir, "baseline_comparison.json"), fb.Comparison); err != nil {
			return err
		}
	}

	res, err := src.LoadAll()
	if err != nil {
		return fmt.Errorf("reload results: %w", err)
	}
	doc := render.RenderImprovements(fb.Report, fb.ActionItems, res)
	if err := writeText(filepath.Join(outDir, "improvements.md"), doc); err != nil {
		return err
	}

	if analyzeFlags.dashboard {
		dash := render.BuildDashboard(time.Now(), res)
		if err := writeJSON(filepath.Join(outDir, "dashboard.json"), dash); err != nil {
			return err
		}
	}

	logger.Info("feedback pass complete",
		"scenarios", len(fb.Report.MetricsSummary),
		"issues", len(fb.Report.Issues),
		"actions", len(fb.ActionItems),
		"output", outDir)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analyzed %d scenario(s), found %d issue(s):\n",
		len(fb.Report.MetricsSummary), len(fb.Report.Issues))
	for _, sev := range []analysis.Severity{
		analysis.SeverityCritical, analysis.SeverityHigh, analysis.SeverityMedium, analysis.SeverityLow,
	} {
		if n := fb.Report.IssueCount[sev]; n > 0 {
			fmt.Fprintf(out, "  %s %s: %d\n", display.SeverityIcon(string(sev)), display.Severity(string(sev)), n)
		}
	}
	if fb.Comparison != nil && fb.Comparison.Message != "" {
		fmt.Fprintf(out, "%s\n", fb.Comparison.Message)
	}
	fmt.Fprintf(out, "Artifacts written to %s\n", outDir)
	return nil
}
