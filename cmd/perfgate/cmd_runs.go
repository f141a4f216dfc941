package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"perfgate/internal/format"
	"perfgate/internal/results"
	"perfgate/internal/store"
)

var runsFlags struct {
	dbPath   string
	limit    int
	markdown bool
}

var runsCmd = &cobra.Command{
	Use:   "runs [scenario]",
	Short: "List archived runs from the run index",
	Long: `Lists runs recorded by the archive command, newest first. With a scenario
argument, shows that scenario's metric series across archived runs instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	f := runsCmd.Flags()
	f.StringVar(&runsFlags.dbPath, "db", store.DefaultDBPath, "Run index DB path")
	f.IntVar(&runsFlags.limit, "limit", 20, "Max runs to list (0 = all)")
	f.BoolVar(&runsFlags.markdown, "markdown", false, "Render the table as Markdown")
}

func runRuns(cmd *cobra.Command, args []string) error {
	st, err := store.Open(runsFlags.dbPath)
	if err != nil {
		return fmt.Errorf("open run index: %w", err)
	}
	defer st.Close()

	mode := format.ASCII
	if runsFlags.markdown {
		mode = format.Markdown
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		sc := results.Scenario(args[0])
		if !sc.Valid() {
			return fmt.Errorf("unknown scenario %q", args[0])
		}
		rows, err := st.ScenarioSeries(sc, runsFlags.limit)
		if err != nil {
			return fmt.Errorf("load series: %w", err)
		}
		if len(rows) == 0 {
			fmt.Fprintf(out, "No archived runs for %s in %s.\n", sc, runsFlags.dbPath)
			return nil
		}
		tbl := format.NewTable(mode)
		tbl.Header("Run", "Avg", "P95", "P99", "Error Rate", "Throughput", "Requests")
		tbl.Columns(
			format.ColumnConfig{Number: 2, Align: format.AlignRight},
			format.ColumnConfig{Number: 3, Align: format.AlignRight},
			format.ColumnConfig{Number: 4, Align: format.AlignRight},
			format.ColumnConfig{Number: 5, Align: format.AlignRight},
			format.ColumnConfig{Number: 6, Align: format.AlignRight},
			format.ColumnConfig{Number: 7, Align: format.AlignRight},
		)
		for _, row := range rows {
			tbl.Row(
				row.RunID,
				format.FmtMillis(row.AvgDurationMs),
				format.FmtMillis(row.P95DurationMs),
				format.FmtMillis(row.P99DurationMs),
				format.FmtPercent(row.ErrorRate),
				format.FmtThroughput(row.RequestsPerSecond),
				format.FmtCount(int(row.TotalRequests)),
			)
		}
		fmt.Fprintln(out, tbl.String())
		return nil
	}

	runs, err := st.ListRuns(runsFlags.limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintf(out, "No archived runs in %s. Archive a run first.\n", runsFlags.dbPath)
		return nil
	}
	tbl := format.NewTable(mode)
	tbl.Header("Run", "Archived At", "Scenarios")
	tbl.Columns(format.ColumnConfig{Number: 3, Align: format.AlignRight})
	for _, r := range runs {
		tbl.Row(r.RunID, r.ArchivedAt, r.ScenarioCount)
	}
	fmt.Fprintln(out, tbl.String())
	return nil
}
