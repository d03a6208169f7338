// Package board ties the spatial core together for one game: it owns the
// occupancy map, the cell/world layout and board bounds, the placement
// finder and the pathfinder, and resolves catalog blueprints into placed
// occupants. All methods are safe for concurrent use; each call runs under
// a single lock, so callers see one operation at a time.
package board

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/bugdem/strategyboard/internal/catalog"
	"github.com/bugdem/strategyboard/internal/config"
	"github.com/bugdem/strategyboard/internal/grid"
	"github.com/bugdem/strategyboard/internal/occupancy"
	"github.com/bugdem/strategyboard/internal/pathfind"
	"github.com/bugdem/strategyboard/internal/placement"
)

var (
	ErrUnknownOccupant = errors.New("board: unknown occupant")
	ErrOutOfBounds     = errors.New("board: footprint outside the board")
	ErrNotProducer     = errors.New("board: occupant cannot produce")
	ErrCannotProduce   = errors.New("board: unit not in production list")
	ErrNoSpawnCell     = errors.New("board: no free cell near spawn point")
	ErrNotMobile       = errors.New("board: occupant cannot move")
	ErrNoRoute         = errors.New("board: no route")
)

// Occupant is a placed blueprint.
type Occupant struct {
	ID        occupancy.ID
	Blueprint catalog.Blueprint
	Anchor    grid.Cell
}

// Kind returns the blueprint kind.
func (o Occupant) Kind() catalog.Kind {
	return o.Blueprint.Kind
}

// Cells returns the cells the occupant covers.
func (o Occupant) Cells() []grid.Cell {
	return o.Blueprint.Footprint.Cells(o.Anchor)
}

// Board is the spatial state of one game.
type Board struct {
	mu sync.Mutex

	cfg     config.Config
	layout  grid.Layout
	bounds  grid.Bounds
	occ     *occupancy.Map
	query   placement.Query
	finder  placement.Finder
	paths   *pathfind.Pathfinder
	catalog *catalog.Catalog
	log     *log.Logger

	occupants map[occupancy.ID]Occupant
}

// New creates an empty board. A nil catalog is replaced by an empty one and
// a nil logger discards output.
func New(cfg config.Config, cat *catalog.Catalog, logger *log.Logger) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, ok := pathfind.ParseMode(cfg.Pathfinding.Mode)
	if !ok {
		return nil, fmt.Errorf("board: unknown pathfinding mode %q", cfg.Pathfinding.Mode)
	}
	if cat == nil {
		cat = catalog.New()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var bounds grid.Bounds = grid.Unbounded{}
	if cfg.Board.Bounded() {
		bounds = grid.NewRect(0, 0, cfg.Board.Width, cfg.Board.Height)
	}
	layout := grid.NewUniformLayout(grid.V(cfg.Board.Origin.X, cfg.Board.Origin.Y), cfg.Board.CellSize)
	query := placement.NewQuery(layout, bounds)

	return &Board{
		cfg:       cfg,
		layout:    layout,
		bounds:    bounds,
		occ:       occupancy.NewMap(),
		query:     query,
		finder:    placement.NewFinder(query, cfg.Placement.MaxSearchRadius),
		paths:     pathfind.New(mode, pathfind.WithMaxIterations(cfg.Pathfinding.MaxIterations)),
		catalog:   cat,
		log:       logger,
		occupants: make(map[occupancy.ID]Occupant),
	}, nil
}

// Config returns the configuration the board was built from.
func (b *Board) Config() config.Config {
	return b.cfg
}

// Catalog returns the blueprint catalog.
func (b *Board) Catalog() *catalog.Catalog {
	return b.catalog
}

// Bounds returns the board boundary.
func (b *Board) Bounds() grid.Bounds {
	return b.bounds
}

// Layout returns the cell/world mapping.
func (b *Board) Layout() grid.Layout {
	return b.layout
}

// Place puts a new occupant of the named blueprint with its bottom-left
// cell at anchor.
func (b *Board) Place(name string, anchor grid.Cell) (Occupant, error) {
	bp, err := b.catalog.Get(name)
	if err != nil {
		return Occupant{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.place(bp, anchor)
}

// PlaceAt is Place with the footprint centred at a world position.
func (b *Board) PlaceAt(name string, centre grid.Vec) (Occupant, error) {
	bp, err := b.catalog.Get(name)
	if err != nil {
		return Occupant{}, err
	}
	if err := bp.Footprint.Validate(); err != nil {
		return Occupant{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.place(bp, grid.AnchorFor(b.layout, bp.Footprint, centre))
}

func (b *Board) place(bp catalog.Blueprint, anchor grid.Cell) (Occupant, error) {
	inside := true
	bp.Footprint.Each(anchor, func(c grid.Cell) bool {
		inside = b.bounds.Exists(c)
		return inside
	})
	if !inside {
		return Occupant{}, fmt.Errorf("board: cannot place %s at %s: %w", bp.Name, anchor, ErrOutOfBounds)
	}

	id := occupancy.NewID()
	if err := b.occ.Place(id, anchor, bp.Footprint); err != nil {
		b.logFailure("place", id, err)
		return Occupant{}, err
	}

	o := Occupant{ID: id, Blueprint: bp, Anchor: anchor}
	b.occupants[id] = o
	b.log.Debug("placed", "id", id, "blueprint", bp.Name, "anchor", anchor)
	return o, nil
}

// Remove takes an occupant off the board.
func (b *Board) Remove(id occupancy.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.occupants[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOccupant, id)
	}
	if err := b.occ.Remove(id, o.Anchor, o.Blueprint.Footprint); err != nil {
		b.logFailure("remove", id, err)
		return err
	}

	delete(b.occupants, id)
	b.log.Debug("removed", "id", id, "blueprint", o.Blueprint.Name, "anchor", o.Anchor)
	return nil
}

// Occupant returns a placed occupant by ID.
func (b *Board) Occupant(id occupancy.ID) (Occupant, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.occupants[id]
	return o, ok
}

// OccupantAt returns the occupant covering c.
func (b *Board) OccupantAt(c grid.Cell) (Occupant, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, ok := b.occ.OccupantAt(c)
	if !ok {
		return Occupant{}, false
	}
	o, ok := b.occupants[id]
	return o, ok
}

// Occupants returns every placed occupant ordered by anchor.
func (b *Board) Occupants() []Occupant {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([]Occupant, 0, len(b.occupants))
	for _, o := range b.occupants {
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Anchor != result[j].Anchor {
			return result[i].Anchor.Less(result[j].Anchor)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Len returns the number of placed occupants.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.occupants)
}

// Snapshot returns a copy of the occupancy map.
func (b *Board) Snapshot() *occupancy.Map {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.occ.Clone()
}

// CellAt returns the cell under a world position.
func (b *Board) CellAt(pos grid.Vec) grid.Cell {
	return b.layout.WorldToCell(pos)
}

// CellCenter returns the world position of a cell's centre.
func (b *Board) CellCenter(c grid.Cell) grid.Vec {
	return b.layout.CellCenter(c)
}

// logFailure logs invariant violations at error level; ordinary
// conflicts are left to the caller.
func (b *Board) logFailure(op string, id occupancy.ID, err error) {
	if occupancy.IsInvariantViolation(err) {
		b.log.Error("occupancy invariant violated", "op", op, "id", id, "err", err)
		return
	}
	b.log.Debug(op+" rejected", "id", id, "err", err)
}
