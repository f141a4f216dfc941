package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"perfgate/internal/analysis"
	"perfgate/internal/display"
	"perfgate/internal/results"
)

var compareFlags struct {
	jsonOut bool
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the latest results against the baseline reference",
	Long: `Compares the latest baseline scenario snapshot against the pinned reference.
The reference is created on first use and never rotated; delete the file
under the history directory to re-pin it.`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().BoolVar(&compareFlags.jsonOut, "json", false, "Emit JSON instead of text")
}

func runCompare(cmd *cobra.Command, _ []string) error {
	src := results.NewFileStore(cfg.ReportsDir)
	res, err := src.LoadAll()
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}

	comparator := analysis.NewBaselineComparator(cfg.BaselineReference)
	comparison, err := comparator.Compare(res, results.ScenarioBaseline)
	if err != nil {
		return fmt.Errorf("compare baseline: %w", err)
	}

	out := cmd.OutOrStdout()
	if comparison == nil {
		fmt.Fprintln(out, "No baseline results to compare.")
		return nil
	}
	if compareFlags.jsonOut {
		return printJSON(comparison)
	}
	if comparison.Message != "" {
		fmt.Fprintln(out, comparison.Message)
		return nil
	}

	printChange(cmd, "P95 latency", comparison.P95Change, "%.0fms")
	printChange(cmd, "Error rate", comparison.ErrorRateChange, "%.4f")
	printChange(cmd, "Throughput", comparison.ThroughputChange, "%.1f req/s")
	return nil
}

func printChange(cmd *cobra.Command, label string, ch *analysis.MetricChange, valueFmt string) {
	if ch == nil {
		return
	}
	out := cmd.OutOrStdout()
	cur := fmt.Sprintf(valueFmt, ch.Current)
	base := fmt.Sprintf(valueFmt, ch.Baseline)
	fmt.Fprintf(out, "%s %s: %s (%.1f%%, %s -> %s)\n",
		display.DirectionIcon(string(ch.Direction)), label,
		display.Direction(string(ch.Direction)), ch.Value, base, cur)
}
