package analysis

import (
	"errors"
	"time"

	"perfgate/internal/results"
)

// ErrNoResults is returned by a feedback pass when no scenario has a latest
// result document.
var ErrNoResults = errors.New("no test results found")

// Source is what a feedback pass needs from the snapshot store.
type Source interface {
	LoadAll() (map[results.Scenario]*results.Result, error)
}

// Engine wires the evaluator, planner, and baseline comparator into one
// feedback pass over the latest results.
type Engine struct {
	src        Source
	evaluator  *Evaluator
	planner    *Planner
	comparator *BaselineComparator
	now        func() time.Time
}

// Feedback is the outcome of one full pass: the assembled analysis record,
// the ordered action items, and the baseline drift (nil when no reference
// could be created or compared).
type Feedback struct {
	Report      *Report      `json:"analysis"`
	ActionItems []ActionItem `json:"action_items"`
	Comparison  *Comparison  `json:"comparison,omitempty"`
}

// NewEngine builds an Engine over src with the given thresholds and baseline
// reference path.
func NewEngine(src Source, thresholds Thresholds, baselineRefPath string) *Engine {
	return &Engine{
		src:        src,
		evaluator:  NewEvaluator(thresholds),
		planner:    NewPlanner(thresholds),
		comparator: NewBaselineComparator(baselineRefPath),
		now:        time.Now,
	}
}

// Run executes one synchronous feedback pass: load latest results, evaluate
// thresholds, plan actions, and compare against the baseline reference.
func (e *Engine) Run() (*Feedback, error) {
	res, err := e.src.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, ErrNoResults
	}

	issues := e.evaluator.EvaluateAll(res)
	report := AssembleReport(e.now(), res, issues)
	items := e.planner.Plan(issues)

	comparison, err := e.comparator.Compare(res, results.ScenarioBaseline)
	if err != nil {
		return nil, err
	}

	return &Feedback{
		Report:      report,
		ActionItems: items,
		Comparison:  comparison,
	}, nil
}
