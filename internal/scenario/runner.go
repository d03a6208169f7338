package scenario

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bugdem/strategyboard/internal/board"
	"github.com/bugdem/strategyboard/internal/catalog"
	"github.com/bugdem/strategyboard/internal/config"
	"github.com/bugdem/strategyboard/internal/grid"
	"github.com/bugdem/strategyboard/internal/occupancy"
	"github.com/bugdem/strategyboard/internal/pathfind"
)

// StepResult is the outcome of one step.
type StepResult struct {
	Index   int // 1-based
	Op      string
	Passed  bool
	Detail  string
	Failure string // Empty when Passed
}

// Report summarises a scenario run.
type Report struct {
	Scenario string
	Steps    []StepResult
	Passed   int
	Failed   int
	Duration time.Duration

	Board *board.Board  // Final board state
	Paths [][]grid.Cell // Paths found by path and order steps, in step order
}

// OK reports whether every step passed.
func (r Report) OK() bool {
	return r.Failed == 0
}

// Runner replays scenarios on fresh boards.
type Runner struct {
	Config  config.Config
	Catalog *catalog.Catalog
	Logger  *log.Logger
}

// NewRunner creates a runner. Scenario board overrides are applied on top
// of cfg for each run.
func NewRunner(cfg config.Config, cat *catalog.Catalog, logger *log.Logger) *Runner {
	return &Runner{Config: cfg, Catalog: cat, Logger: logger}
}

// Run validates sc and executes its steps in order. Step failures are
// recorded in the report; the error is reserved for scenarios that cannot
// run at all.
func (r *Runner) Run(sc Scenario) (Report, error) {
	if err := Validate(sc, r.Catalog); err != nil {
		return Report{}, err
	}

	cfg := sc.Board.Apply(r.Config)
	b, err := board.New(cfg, r.Catalog, r.Logger)
	if err != nil {
		return Report{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	start := time.Now()
	report := Report{Scenario: sc.Name, Board: b}
	aliases := make(map[string]occupancy.ID)

	for i, st := range sc.Steps {
		obs := execute(b, st, aliases)
		if obs.path != nil {
			report.Paths = append(report.Paths, obs.path)
		}

		res := StepResult{Index: i + 1, Op: st.Op, Detail: obs.detail()}
		failures := check(st.Expect, obs)
		if len(failures) == 0 {
			res.Passed = true
			report.Passed++
		} else {
			res.Failure = strings.Join(failures, "; ")
			report.Failed++
		}
		report.Steps = append(report.Steps, res)
	}

	report.Duration = time.Since(start)
	return report, nil
}

// observation is what a step produced. Nil fields were not reported by
// the operation.
type observation struct {
	summary  string
	err      error
	feasible *bool
	found    *bool
	anchor   *grid.Cell
	blocked  *int
	outcome  string
	cost     *int
	length   *int
	path     []grid.Cell
}

func (o observation) detail() string {
	if o.err != nil {
		return "error: " + o.err.Error()
	}
	return o.summary
}

func execute(b *board.Board, st Step, aliases map[string]occupancy.ID) observation {
	var obs observation

	switch st.Op {
	case OpPlace:
		o, err := b.Place(st.Blueprint, toCell(st.At))
		if obs.err = err; err != nil {
			break
		}
		obs.anchor = &o.Anchor
		obs.summary = fmt.Sprintf("placed %s at %s", st.Blueprint, o.Anchor)
		if st.As != "" {
			aliases[st.As] = o.ID
		}

	case OpRemove:
		obs.err = b.Remove(aliases[st.Ref])
		obs.summary = "removed " + st.Ref

	case OpEvaluate:
		res, err := b.EvaluateAt(st.Blueprint, toCell(st.At))
		if obs.err = err; err != nil {
			break
		}
		blocked := res.Blocked.Size()
		obs.feasible = &res.Feasible
		obs.anchor = &res.Anchor
		obs.blocked = &blocked
		obs.summary = fmt.Sprintf("feasible=%v blocked=%d", res.Feasible, blocked)

	case OpNearest:
		res, found, err := b.FindNearest(st.Blueprint, toCell(st.At))
		if obs.err = err; err != nil {
			break
		}
		obs.found = &found
		if found {
			obs.anchor = &res.Anchor
			obs.summary = fmt.Sprintf("nearest free anchor %s", res.Anchor)
		} else {
			obs.summary = "no free anchor within radius"
		}

	case OpPath:
		res := b.Search(toCell(st.From), toCell(st.To))
		length := len(res.Path)
		obs.outcome = res.Outcome.String()
		obs.cost = &res.Cost
		obs.length = &length
		obs.path = res.Path
		obs.summary = fmt.Sprintf("%s cost=%d len=%d expanded=%d", res.Outcome, res.Cost, length, res.Expanded)

	case OpSpawn:
		o, err := b.Spawn(aliases[st.Ref], st.Unit)
		if obs.err = err; err != nil {
			break
		}
		obs.anchor = &o.Anchor
		obs.summary = fmt.Sprintf("spawned %s at %s", st.Unit, o.Anchor)
		if st.As != "" {
			aliases[st.As] = o.ID
		}

	case OpOrder:
		route, err := b.Order(aliases[st.Ref], toCell(st.To))
		obs.err = err
		if route.Outcome != pathfind.NotSearched {
			obs.outcome = route.Outcome.String()
		}
		if err != nil {
			break
		}
		length := len(route.Path)
		obs.anchor = &route.To
		obs.cost = &route.Cost
		obs.length = &length
		obs.path = route.Path
		obs.summary = fmt.Sprintf("moved %s %s -> %s cost=%d", st.Ref, route.From, route.To, route.Cost)

	default:
		obs.err = fmt.Errorf("unknown op %q", st.Op)
	}

	return obs
}

// check compares an observation with the expectations. Without an
// explicit error expectation any error fails the step.
func check(e *Expect, o observation) []string {
	if e == nil {
		if o.err != nil {
			return []string{"unexpected error: " + o.err.Error()}
		}
		return nil
	}

	if e.Error != "" {
		if got := ErrorKind(o.err); got != e.Error {
			return []string{fmt.Sprintf("error = %q, expected %q", got, e.Error)}
		}
		return nil
	}
	if o.err != nil {
		return []string{"unexpected error: " + o.err.Error()}
	}

	var failures []string
	if e.Feasible != nil {
		failures = appendMismatch(failures, "feasible", o.feasible, *e.Feasible)
	}
	if e.Found != nil {
		failures = appendMismatch(failures, "found", o.found, *e.Found)
	}
	if e.Anchor != nil {
		failures = appendMismatch(failures, "anchor", o.anchor, toCell(e.Anchor))
	}
	if e.Blocked != nil {
		failures = appendMismatch(failures, "blocked", o.blocked, *e.Blocked)
	}
	if e.Outcome != "" && o.outcome != e.Outcome {
		failures = append(failures, fmt.Sprintf("outcome = %q, expected %q", o.outcome, e.Outcome))
	}
	if e.Cost != nil {
		failures = appendMismatch(failures, "cost", o.cost, *e.Cost)
	}
	if e.Length != nil {
		failures = appendMismatch(failures, "length", o.length, *e.Length)
	}
	return failures
}

func appendMismatch[T comparable](failures []string, field string, got *T, expected T) []string {
	if got == nil {
		return append(failures, field+" not reported")
	}
	if *got != expected {
		return append(failures, fmt.Sprintf("%s = %v, expected %v", field, *got, expected))
	}
	return failures
}

// errorKinds maps scenario error names to the errors they match.
var errorKinds = []struct {
	name string
	err  error
}{
	{"occupied", occupancy.ErrOccupied},
	{"out_of_bounds", board.ErrOutOfBounds},
	{"unknown_blueprint", catalog.ErrUnknownBlueprint},
	{"unknown_occupant", board.ErrUnknownOccupant},
	{"not_producer", board.ErrNotProducer},
	{"cannot_produce", board.ErrCannotProduce},
	{"no_spawn_cell", board.ErrNoSpawnCell},
	{"not_mobile", board.ErrNotMobile},
	{"no_route", board.ErrNoRoute},
}

// ErrorKind names err for scenario expectations. It returns "" for nil
// and "other" for errors with no scenario name.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "other"
}
