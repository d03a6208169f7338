// Package scenario loads scripted board scenarios from YAML and replays
// them against a board. A scenario sets up occupants, issues placement,
// search, spawn and move steps, and checks each step's result against
// optional expectations.
package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bugdem/strategyboard/internal/catalog"
	"github.com/bugdem/strategyboard/internal/config"
	"github.com/bugdem/strategyboard/internal/grid"
)

// Step operations.
const (
	OpPlace    = "place"
	OpRemove   = "remove"
	OpEvaluate = "evaluate"
	OpNearest  = "nearest"
	OpPath     = "path"
	OpSpawn    = "spawn"
	OpOrder    = "order"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Scenario is a parsed scenario document.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Board       BoardOverride `yaml:"board,omitempty"`
	Steps       []Step        `yaml:"steps"`

	FilePath string `yaml:"-"`
}

// BoardOverride adjusts the base configuration for one scenario.
type BoardOverride struct {
	Width           *int   `yaml:"width,omitempty"`
	Height          *int   `yaml:"height,omitempty"`
	Mode            string `yaml:"mode,omitempty"`
	MaxIterations   *int   `yaml:"max_iterations,omitempty"`
	MaxSearchRadius *int   `yaml:"max_search_radius,omitempty"`
}

// Apply returns base with the overrides applied.
func (o BoardOverride) Apply(base config.Config) config.Config {
	cfg := base
	if o.Width != nil {
		cfg.Board.Width = *o.Width
	}
	if o.Height != nil {
		cfg.Board.Height = *o.Height
	}
	if o.Mode != "" {
		cfg.Pathfinding.Mode = o.Mode
	}
	if o.MaxIterations != nil {
		cfg.Pathfinding.MaxIterations = *o.MaxIterations
	}
	if o.MaxSearchRadius != nil {
		cfg.Placement.MaxSearchRadius = *o.MaxSearchRadius
	}
	return cfg
}

// Step is one scripted operation.
type Step struct {
	Op        string  `yaml:"op"`
	Blueprint string  `yaml:"blueprint,omitempty"`
	Unit      string  `yaml:"unit,omitempty"`
	At        []int   `yaml:"at,omitempty"`
	From      []int   `yaml:"from,omitempty"`
	To        []int   `yaml:"to,omitempty"`
	Ref       string  `yaml:"ref,omitempty"` // Alias of an earlier occupant
	As        string  `yaml:"as,omitempty"`  // Alias for the occupant this step creates
	Expect    *Expect `yaml:"expect,omitempty"`
}

// Expect holds the checks applied to a step's result. Unset fields are
// not checked.
type Expect struct {
	Feasible *bool  `yaml:"feasible,omitempty"`
	Found    *bool  `yaml:"found,omitempty"`
	Anchor   []int  `yaml:"anchor,omitempty"`
	Blocked  *int   `yaml:"blocked,omitempty"`
	Outcome  string `yaml:"outcome,omitempty"`
	Cost     *int   `yaml:"cost,omitempty"`
	Length   *int   `yaml:"length,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

// toCell converts a validated [x, y] pair.
func toCell(p []int) grid.Cell {
	if len(p) != 2 {
		return grid.Cell{}
	}
	return grid.C(p[0], p[1])
}

// Parse decodes and schema-validates a scenario document.
func Parse(data []byte) (Scenario, error) {
	if err := validateSchema(data); err != nil {
		return Scenario{}, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return sc, nil
}

// Validate checks a scenario against a catalog:
//   - every blueprint and unit exists
//   - every ref names an alias created by an earlier step
//   - aliases are unique
func Validate(sc Scenario, cat *catalog.Catalog) error {
	aliases := make(map[string]int)

	for i, st := range sc.Steps {
		for _, name := range []string{st.Blueprint, st.Unit} {
			if name != "" && !cat.Exists(name) {
				return ValidationError{
					Code:    "UNKNOWN_BLUEPRINT",
					Message: fmt.Sprintf("step %d (%s): blueprint %q not in catalog", i+1, st.Op, name),
				}
			}
		}

		if st.Ref != "" {
			if _, ok := aliases[st.Ref]; !ok {
				return ValidationError{
					Code:    "UNKNOWN_ALIAS",
					Message: fmt.Sprintf("step %d (%s): %q is not defined by an earlier step", i+1, st.Op, st.Ref),
				}
			}
		}

		if st.As != "" {
			if st.Op != OpPlace && st.Op != OpSpawn {
				return ValidationError{
					Code:    "INVALID_ALIAS",
					Message: fmt.Sprintf("step %d (%s): only place and spawn steps can name an occupant", i+1, st.Op),
				}
			}
			if prev, ok := aliases[st.As]; ok {
				return ValidationError{
					Code:    "DUPLICATE_ALIAS",
					Message: fmt.Sprintf("step %d: alias %q already defined by step %d", i+1, st.As, prev),
				}
			}
			aliases[st.As] = i + 1
		}
	}

	return nil
}
