package placement

import (
	"github.com/bugdem/strategyboard/internal/grid"
	"github.com/bugdem/strategyboard/internal/occupancy"
)

// Query evaluates footprints against an occupancy map.
type Query struct {
	Layout grid.Layout
	Bounds grid.Bounds // nil means every cell exists
}

// NewQuery creates a query over the given layout and bounds.
func NewQuery(layout grid.Layout, bounds grid.Bounds) Query {
	return Query{Layout: layout, Bounds: bounds}
}

// Option adjusts a single evaluation.
type Option func(*evalOptions)

type evalOptions struct {
	ignore occupancy.ID
}

// WithIgnore treats cells owned by id as free. Use it for an explicit
// self-overlap check; it is never applied implicitly.
func WithIgnore(id occupancy.ID) Option {
	return func(o *evalOptions) {
		o.ignore = id
	}
}

// Evaluate checks fp centred at the world position centre.
func (q Query) Evaluate(fp grid.Footprint, centre grid.Vec, m occupancy.Reader, opts ...Option) (Result, error) {
	if err := fp.Validate(); err != nil {
		return Result{}, err
	}
	return q.EvaluateAt(fp, grid.AnchorFor(q.Layout, fp, centre), m, opts...)
}

// EvaluateAt checks fp with its bottom-left cell at anchor.
func (q Query) EvaluateAt(fp grid.Footprint, anchor grid.Cell, m occupancy.Reader, opts ...Option) (Result, error) {
	res := NewResult()
	if err := q.EvaluateInto(res, fp, anchor, m, opts...); err != nil {
		return Result{}, err
	}
	return *res, nil
}

// EvaluateInto is EvaluateAt writing into a caller-owned result, which is
// reset first.
func (q Query) EvaluateInto(res *Result, fp grid.Footprint, anchor grid.Cell, m occupancy.Reader, opts ...Option) error {
	if err := fp.Validate(); err != nil {
		return err
	}

	var o evalOptions
	for _, opt := range opts {
		opt(&o)
	}

	res.Reset()
	fp.Each(anchor, func(c grid.Cell) bool {
		if q.cellFree(c, m, o) {
			res.Available.Put(c)
		} else {
			res.Blocked.Put(c)
		}
		return true
	})

	res.Feasible = res.Blocked.Size() == 0
	res.Anchor = anchor
	res.Footprint = fp
	res.Position = grid.PositionFor(q.Layout, fp, anchor)
	return nil
}

func (q Query) cellFree(c grid.Cell, m occupancy.Reader, o evalOptions) bool {
	if q.Bounds != nil && !q.Bounds.Exists(c) {
		return false
	}
	id, taken := m.OccupantAt(c)
	if !taken {
		return true
	}
	return o.ignore != "" && id == o.ignore
}
