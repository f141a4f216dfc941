package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"perfgate/internal/analysis"
	"perfgate/internal/display"
	"perfgate/internal/results"
)

var trendsFlags struct {
	limit   int
	jsonOut bool
}

var trendsCmd = &cobra.Command{
	Use:   "trends [scenario]",
	Short: "Compare current results against archived history",
	Long: `Compares each scenario's current snapshot against the mean of its archived
runs and reports directional drift. With no argument, all scenarios are
analyzed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrends,
}

func init() {
	f := trendsCmd.Flags()
	f.IntVar(&trendsFlags.limit, "limit", 0, "Max archived runs to read (default from config)")
	f.BoolVar(&trendsFlags.jsonOut, "json", false, "Emit JSON instead of text")
}

func runTrends(cmd *cobra.Command, args []string) error {
	scenarios := results.Scenarios()
	if len(args) == 1 {
		sc := results.Scenario(args[0])
		if !sc.Valid() {
			return fmt.Errorf("unknown scenario %q", args[0])
		}
		scenarios = []results.Scenario{sc}
	}

	limit := trendsFlags.limit
	if limit <= 0 {
		limit = cfg.HistoryLimit
	}
	analyzer := analysis.NewTrendAnalyzer(results.NewFileStore(cfg.ReportsDir), limit)

	var reports []*analysis.TrendReport
	for _, sc := range scenarios {
		report, err := analyzer.Analyze(sc)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", sc, err)
		}
		reports = append(reports, report)
	}

	if trendsFlags.jsonOut {
		return printJSON(reports)
	}

	out := cmd.OutOrStdout()
	for _, report := range reports {
		fmt.Fprintf(out, "%s:\n", display.Scenario(string(report.Scenario)))
		if report.Error != "" {
			fmt.Fprintf(out, "  %s\n", report.Error)
			continue
		}
		if len(report.Trends) == 0 {
			fmt.Fprintf(out, "  stable against recent history\n")
			continue
		}
		for _, tr := range report.Trends {
			fmt.Fprintf(out, "  %s %s %s: %s",
				display.DirectionIcon(string(tr.Direction)),
				display.Direction(string(tr.Direction)),
				display.Metric(tr.Metric),
				tr.Change)
			if tr.Baseline != "" {
				fmt.Fprintf(out, " (historical mean %s)", tr.Baseline)
			}
			fmt.Fprintln(out)
		}
		for _, rec := range report.Recommendations {
			fmt.Fprintf(out, "  -> %s\n", rec)
		}
	}
	return nil
}
