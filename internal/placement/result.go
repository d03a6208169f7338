// Package placement answers "can this footprint go here?" against an
// occupancy map, and searches outward for the nearest spot where it can.
// Queries are pure: they never mutate the map.
package placement

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/bugdem/strategyboard/internal/grid"
)

// Result is the answer to one placement query.
// Available and Blocked partition the footprint's cells even when the
// placement is infeasible, so a consumer can highlight both.
type Result struct {
	Feasible  bool
	Anchor    grid.Cell      // Bottom-left cell
	Position  grid.Vec       // World centre of the footprint at Anchor
	Footprint grid.Footprint // Footprint the query was evaluated for
	Available mapset.Set[grid.Cell]
	Blocked   mapset.Set[grid.Cell]
}

// NewResult returns an empty result ready for EvaluateInto.
func NewResult() *Result {
	return &Result{
		Available: mapset.New[grid.Cell](),
		Blocked:   mapset.New[grid.Cell](),
	}
}

// Reset clears the result for reuse.
func (r *Result) Reset() {
	r.Feasible = false
	r.Anchor = grid.Cell{}
	r.Position = grid.Vec{}
	r.Footprint = grid.Footprint{}
	r.Available = mapset.New[grid.Cell]()
	r.Blocked = mapset.New[grid.Cell]()
}

// AvailableCells returns the free footprint cells ordered by X then Y.
func (r *Result) AvailableCells() []grid.Cell {
	return sortedCells(r.Available)
}

// BlockedCells returns the occupied footprint cells ordered by X then Y.
func (r *Result) BlockedCells() []grid.Cell {
	return sortedCells(r.Blocked)
}

func sortedCells(s mapset.Set[grid.Cell]) []grid.Cell {
	cells := make([]grid.Cell, 0, s.Size())
	s.Each(func(c grid.Cell) {
		cells = append(cells, c)
	})
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Less(cells[j])
	})
	return cells
}
