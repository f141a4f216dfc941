package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"perfgate/internal/logging"
	"perfgate/internal/results"
	"perfgate/internal/store"
)

var archiveFlags struct {
	runID    string
	dbPath   string
	noIndex  bool
	parallel int
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive the latest results into history",
	Long: `Copies the latest result snapshots to history/<run-id>/ and records the
run in the SQLite index. Archived runs feed the trends command.`,
	RunE: runArchive,
}

func init() {
	f := archiveCmd.Flags()
	f.StringVar(&archiveFlags.runID, "run-id", "", "Run ID (default: current UTC timestamp)")
	f.StringVar(&archiveFlags.dbPath, "db", store.DefaultDBPath, "Run index DB path")
	f.BoolVar(&archiveFlags.noIndex, "no-index", false, "Skip the SQLite run index")
	f.IntVar(&archiveFlags.parallel, "parallel", 4, "Max concurrent file copies")
}

func runArchive(cmd *cobra.Command, _ []string) error {
	logger := logging.New("archive")
	src := results.NewFileStore(cfg.ReportsDir)

	res, err := src.LoadAll()
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}
	if len(res) == 0 {
		return fmt.Errorf("no results under %s to archive", src.LatestDir())
	}

	runID := archiveFlags.runID
	if runID == "" {
		runID = time.Now().UTC().Format("20060102-150405")
	}
	if strings.ContainsAny(runID, "/\\") {
		return fmt.Errorf("run ID %q must not contain path separators", runID)
	}
	destDir := filepath.Join(src.HistoryDir(), runID)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	g := new(errgroup.Group)
	g.SetLimit(archiveFlags.parallel)
	for sc := range res {
		name := string(sc) + ".json"
		srcPath := filepath.Join(src.LatestDir(), name)
		destPath := filepath.Join(destDir, name)
		g.Go(func() error {
			if err := copyFile(srcPath, destPath); err != nil {
				return fmt.Errorf("archive %s: %w", name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if !archiveFlags.noIndex {
		st, err := store.Open(archiveFlags.dbPath)
		if err != nil {
			return fmt.Errorf("open run index: %w", err)
		}
		defer st.Close()
		if err := st.RecordRun(runID, res); err != nil {
			return fmt.Errorf("index run: %w", err)
		}
	}

	logger.Info("run archived", "run_id", runID, "scenarios", len(res), "dir", destDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Archived %d scenario(s) as run %s\n", len(res), runID)
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
