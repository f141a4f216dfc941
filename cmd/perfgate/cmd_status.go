package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"perfgate/internal/display"
	"perfgate/internal/format"
	"perfgate/internal/results"
)

var statusFlags struct {
	markdown bool
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest results per scenario",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusFlags.markdown, "markdown", false, "Render the table as Markdown")
}

func runStatus(cmd *cobra.Command, _ []string) error {
	src := results.NewFileStore(cfg.ReportsDir)
	res, err := src.LoadAll()
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(res) == 0 {
		fmt.Fprintf(out, "No results under %s. Run the load-test suite first.\n", src.LatestDir())
		return nil
	}

	mode := format.ASCII
	if statusFlags.markdown {
		mode = format.Markdown
	}
	tbl := format.NewTable(mode)
	tbl.Header("Scenario", "Stable", "Avg", "P95", "P99", "Error Rate", "Throughput", "Requests")
	tbl.Columns(
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
		format.ColumnConfig{Number: 6, Align: format.AlignRight},
		format.ColumnConfig{Number: 7, Align: format.AlignRight},
		format.ColumnConfig{Number: 8, Align: format.AlignRight},
	)

	for _, sc := range results.Scenarios() {
		r, ok := res[sc]
		if !ok {
			continue
		}
		sum := r.Summary
		tbl.Row(
			display.Scenario(string(sc)),
			format.BoolMark(r.Analysis.Stable()),
			format.FmtMillis(sum.AvgDurationMs),
			format.FmtMillis(sum.P95DurationMs),
			format.FmtMillis(sum.P99DurationMs),
			format.FmtPercent(sum.ErrorRate),
			format.FmtThroughput(sum.RequestsPerSecond),
			format.FmtCount(int(sum.TotalRequests)),
		)
	}
	fmt.Fprintln(out, tbl.String())
	return nil
}
