package board

import (
	"github.com/bugdem/strategyboard/internal/grid"
	"github.com/bugdem/strategyboard/internal/occupancy"
	"github.com/bugdem/strategyboard/internal/pathfind"
	"github.com/bugdem/strategyboard/internal/placement"
)

// Evaluate checks whether the named blueprint fits centred at a world
// position.
func (b *Board) Evaluate(name string, centre grid.Vec, opts ...placement.Option) (placement.Result, error) {
	bp, err := b.catalog.Get(name)
	if err != nil {
		return placement.Result{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.query.Evaluate(bp.Footprint, centre, b.occ, opts...)
}

// EvaluateAt checks whether the named blueprint fits with its bottom-left
// cell at anchor.
func (b *Board) EvaluateAt(name string, anchor grid.Cell, opts ...placement.Option) (placement.Result, error) {
	bp, err := b.catalog.Get(name)
	if err != nil {
		return placement.Result{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.query.EvaluateAt(bp.Footprint, anchor, b.occ, opts...)
}

// FindNearest returns the closest anchor around target where the named
// blueprint fits.
func (b *Board) FindNearest(name string, target grid.Cell, opts ...placement.Option) (placement.Result, bool, error) {
	bp, err := b.catalog.Get(name)
	if err != nil {
		return placement.Result{}, false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.finder.FindNearest(target, bp.Footprint, b.occ, opts...)
}

// FindPath returns a route between two cells, or nil.
func (b *Board) FindPath(start, end grid.Cell) []grid.Cell {
	return b.Search(start, end).Path
}

// Search runs the pathfinder and reports how it ended.
func (b *Board) Search(start, end grid.Cell) pathfind.Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.search(start, end, "", grid.Footprint{})
}

// search routes the anchor cell of a mover. A non-zero fp makes every
// footprint cell at each step count.
func (b *Board) search(start, end grid.Cell, self occupancy.ID, fp grid.Footprint) pathfind.Result {
	res := b.paths.Search(start, end, traversal{b: b, self: self, fp: fp})
	if res.Outcome == pathfind.Exhausted {
		b.log.Warn("path search exhausted", "start", start, "end", end, "expanded", res.Expanded)
	}
	return res
}

// CanOccupy implements pathfind.Traversability.
func (b *Board) CanOccupy(c grid.Cell) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return traversal{b: b}.CanOccupy(c)
}

// CellExists implements pathfind.Traversability.
func (b *Board) CellExists(c grid.Cell) bool {
	return b.bounds.Exists(c)
}

// traversal is the lock-free view handed to the pathfinder while the
// board lock is held. Cells owned by self count as free. With a footprint
// set, a cell is passable only if the whole footprint anchored there is.
type traversal struct {
	b    *Board
	self occupancy.ID
	fp   grid.Footprint // Zero means a single cell
}

func (t traversal) CanOccupy(c grid.Cell) bool {
	return t.all(c, t.cellFree)
}

func (t traversal) CellExists(c grid.Cell) bool {
	return t.all(c, t.b.bounds.Exists)
}

func (t traversal) all(anchor grid.Cell, fn func(grid.Cell) bool) bool {
	if t.fp.W <= 1 && t.fp.H <= 1 {
		return fn(anchor)
	}
	ok := true
	t.fp.Each(anchor, func(c grid.Cell) bool {
		ok = fn(c)
		return ok
	})
	return ok
}

func (t traversal) cellFree(c grid.Cell) bool {
	if !t.b.bounds.Exists(c) {
		return false
	}
	id, ok := t.b.occ.OccupantAt(c)
	return !ok || (t.self != "" && id == t.self)
}
