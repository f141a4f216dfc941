package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DefaultReportsDir is the default root of the reports layout
// (latest/<scenario>.json plus history/<run-id>/<scenario>.json).
const DefaultReportsDir = "reports"

// FileStore loads run documents from the reports directory layout.
type FileStore struct {
	Dir string // reports root
}

// NewFileStore returns a FileStore rooted at dir (DefaultReportsDir if empty).
// The directory is not created here; a missing layout is a normal empty state.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultReportsDir
	}
	return &FileStore{Dir: dir}
}

// LatestDir returns the directory holding the most recent run.
func (s *FileStore) LatestDir() string { return filepath.Join(s.Dir, "latest") }

// HistoryDir returns the directory holding archived runs.
func (s *FileStore) HistoryDir() string { return filepath.Join(s.Dir, "history") }

// Load returns the latest result for scenario, or nil if no file exists.
// A file that exists but fails to parse is an error: it signals upstream
// pipeline corruption worth halting on.
func (s *FileStore) Load(scenario Scenario) (*Result, error) {
	return readResult(filepath.Join(s.LatestDir(), string(scenario)+".json"))
}

// LoadAll returns the latest results for every scenario that has one.
func (s *FileStore) LoadAll() (map[Scenario]*Result, error) {
	out := make(map[Scenario]*Result)
	for _, sc := range Scenarios() {
		r, err := s.Load(sc)
		if err != nil {
			return nil, err
		}
		if r != nil {
			out[sc] = r
		}
	}
	return out, nil
}

// LoadHistory returns up to limit archived results for scenario, newest run
// first (run IDs sort lexicographically as timestamps). A missing history
// directory yields an empty slice.
func (s *FileStore) LoadHistory(scenario Scenario, limit int) ([]HistoryRecord, error) {
	entries, err := os.ReadDir(s.HistoryDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	var runIDs []string
	for _, e := range entries {
		if e.IsDir() {
			runIDs = append(runIDs, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(runIDs)))
	if limit > 0 && len(runIDs) > limit {
		runIDs = runIDs[:limit]
	}

	var history []HistoryRecord
	for _, id := range runIDs {
		r, err := readResult(filepath.Join(s.HistoryDir(), id, string(scenario)+".json"))
		if err != nil {
			return nil, err
		}
		if r == nil {
			continue // scenario not part of that run
		}
		history = append(history, HistoryRecord{RunID: id, Result: *r})
	}
	return history, nil
}

func readResult(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read result: %w", err)
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse result %s: %w", filepath.Base(path), err)
	}
	return &r, nil
}
