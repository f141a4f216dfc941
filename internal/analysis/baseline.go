package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"perfgate/internal/results"
)

// BaselineReferenceName is the file holding the persisted reference snapshot,
// conventionally under the reports history directory.
const BaselineReferenceName = "baseline_reference.json"

// Floor defaults substituted for zero-valued reference metrics so percentage
// change stays finite while large relative swings remain visible.
const (
	refFloorP95        = 1.0
	refFloorErrorRate  = 0.001
	refFloorThroughput = 1.0
)

// CreatedMessage is returned on the call that persists the first reference.
const CreatedMessage = "Baseline reference created"

// BaselineComparator tracks drift of the current run against one persisted
// reference snapshot. The reference is written once, on first use, and is
// read-only afterward.
type BaselineComparator struct {
	refPath string
}

// NewBaselineComparator returns a comparator persisting its reference at
// refPath.
func NewBaselineComparator(refPath string) *BaselineComparator {
	return &BaselineComparator{refPath: refPath}
}

// ReferencePath returns the reference file location.
func (c *BaselineComparator) ReferencePath() string { return c.refPath }

// Compare computes percentage drift of the current baseline-scenario result
// against the persisted reference. On first use it persists the current
// result verbatim as the reference and returns a creation acknowledgment
// with no comparison. Returns (nil, nil) when there is neither a reference
// nor a current baseline result to seed one from.
func (c *BaselineComparator) Compare(current map[results.Scenario]*results.Result, baselineScenario results.Scenario) (*Comparison, error) {
	ref, err := c.loadReference()
	if err != nil {
		return nil, err
	}

	if ref == nil {
		cur, ok := current[baselineScenario]
		if !ok || cur == nil {
			return nil, nil
		}
		if err := c.writeReference(cur); err != nil {
			return nil, err
		}
		return &Comparison{Message: CreatedMessage}, nil
	}

	var curSummary results.Snapshot
	if cur, ok := current[baselineScenario]; ok && cur != nil {
		curSummary = cur.Summary
	}

	p95 := calcChange(curSummary.P95DurationMs, floored(ref.Summary.P95DurationMs, refFloorP95), true)
	errRate := calcChange(curSummary.ErrorRate, floored(ref.Summary.ErrorRate, refFloorErrorRate), true)
	thr := calcChange(curSummary.RequestsPerSecond, floored(ref.Summary.RequestsPerSecond, refFloorThroughput), false)

	return &Comparison{
		P95Change:        p95,
		ErrorRateChange:  errRate,
		ThroughputChange: thr,
	}, nil
}

func (c *BaselineComparator) loadReference() (*results.Result, error) {
	data, err := os.ReadFile(c.refPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read baseline reference: %w", err)
	}
	var r results.Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse baseline reference: %w", err)
	}
	return &r, nil
}

func (c *BaselineComparator) writeReference(r *results.Result) error {
	if err := os.MkdirAll(filepath.Dir(c.refPath), 0o755); err != nil {
		return fmt.Errorf("create reference dir: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal baseline reference: %w", err)
	}
	if err := os.WriteFile(c.refPath, data, 0o644); err != nil {
		return fmt.Errorf("write baseline reference: %w", err)
	}
	return nil
}

// calcChange computes percentage change of current against baseline.
// lowerIsBetter selects the cost orientation: for latency and error rate a
// positive change is degraded; for throughput a decrease is degraded.
func calcChange(current, baseline float64, lowerIsBetter bool) *MetricChange {
	if baseline == 0 {
		return &MetricChange{Value: 0, Direction: DirectionUnchanged}
	}
	change := (current - baseline) / baseline * 100

	dir := DirectionUnchanged
	switch {
	case change > 0:
		dir = DirectionDegraded
	case change < 0:
		dir = DirectionImproved
	}
	if !lowerIsBetter && dir != DirectionUnchanged {
		if dir == DirectionDegraded {
			dir = DirectionImproved
		} else {
			dir = DirectionDegraded
		}
	}

	abs := change
	if abs < 0 {
		abs = -abs
	}
	return &MetricChange{
		Value:     abs,
		Direction: dir,
		Current:   current,
		Baseline:  baseline,
	}
}

func floored(v, floor float64) float64 {
	if v == 0 {
		return floor
	}
	return v
}
