package placement

import (
	"github.com/bugdem/strategyboard/internal/grid"
	"github.com/bugdem/strategyboard/internal/occupancy"
)

// DefaultMaxRadius bounds the ring search when no radius is configured.
const DefaultMaxRadius = 64

// Finder searches for the closest feasible anchor around a target cell.
type Finder struct {
	Query     Query
	MaxRadius int // Largest Chebyshev ring tried; <= 0 uses DefaultMaxRadius
}

// NewFinder creates a finder with the given radius ceiling.
func NewFinder(q Query, maxRadius int) Finder {
	return Finder{Query: q, MaxRadius: maxRadius}
}

// FindNearest evaluates fp anchored at target, then on rings of radius
// 1, 2, ... up to MaxRadius. Candidates on a ring are visited with x
// ascending, then y ascending. The first feasible result is returned with
// found=true; when every ring is exhausted found is false.
func (f Finder) FindNearest(target grid.Cell, fp grid.Footprint, m occupancy.Reader, opts ...Option) (Result, bool, error) {
	if err := fp.Validate(); err != nil {
		return Result{}, false, err
	}

	res := NewResult()
	if err := f.Query.EvaluateInto(res, fp, target, m, opts...); err != nil {
		return Result{}, false, err
	}
	if res.Feasible {
		return *res, true, nil
	}

	maxRadius := f.MaxRadius
	if maxRadius <= 0 {
		maxRadius = DefaultMaxRadius
	}

	for r := 1; r <= maxRadius; r++ {
		found := false
		eachOnRing(target, r, func(c grid.Cell) bool {
			// fp was validated above, so EvaluateInto cannot fail here.
			_ = f.Query.EvaluateInto(res, fp, c, m, opts...)
			found = res.Feasible
			return !found
		})
		if found {
			return *res, true, nil
		}
	}

	return Result{}, false, nil
}

// eachOnRing visits the perimeter of the square of Chebyshev radius r
// around centre, x ascending then y ascending, until fn returns false.
func eachOnRing(centre grid.Cell, r int, fn func(c grid.Cell) bool) {
	for dx := -r; dx <= r; dx++ {
		if dx == -r || dx == r {
			for dy := -r; dy <= r; dy++ {
				if !fn(centre.Add(dx, dy)) {
					return
				}
			}
			continue
		}
		if !fn(centre.Add(dx, -r)) || !fn(centre.Add(dx, r)) {
			return
		}
	}
}
