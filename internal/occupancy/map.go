// Package occupancy holds the ground truth of which grid cells are taken by
// which placed occupant. Map is the only mutator of that state; placement
// queries and the pathfinder read it through the Reader interface.
package occupancy

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/bugdem/strategyboard/internal/grid"
)

// ID is the opaque identity of a placed object.
type ID string

// NewID returns a fresh random occupant identity.
func NewID() ID {
	return ID(uuid.NewString())
}

// Placement records where an occupant sits.
type Placement struct {
	Anchor    grid.Cell      // Bottom-left cell
	Footprint grid.Footprint // Extent in cells
}

// Reader is the read-only view of an occupancy map.
type Reader interface {
	OccupantAt(c grid.Cell) (ID, bool)
	IsFree(c grid.Cell) bool
}

// Map maps cells to the occupant covering them.
//
// Invariants:
//   - each cell maps to at most one occupant;
//   - a registered occupant covers every cell of its footprint, never a subset;
//   - failed mutations leave the map unchanged.
//
// Map is not safe for concurrent use; see board.Board for a guarded wrapper.
type Map struct {
	cells      map[grid.Cell]ID
	placements map[ID]Placement
}

// NewMap creates an empty occupancy map.
func NewMap() *Map {
	return &Map{
		cells:      make(map[grid.Cell]ID),
		placements: make(map[ID]Placement),
	}
}

// OccupantAt returns the occupant covering c, if any.
func (m *Map) OccupantAt(c grid.Cell) (ID, bool) {
	id, ok := m.cells[c]
	return id, ok
}

// IsFree returns true if no occupant covers c.
func (m *Map) IsFree(c grid.Cell) bool {
	_, ok := m.cells[c]
	return !ok
}

// Placement returns the recorded placement of an occupant.
func (m *Map) Placement(id ID) (Placement, bool) {
	p, ok := m.placements[id]
	return p, ok
}

// Conflicts returns the cells of fp anchored at anchor that are currently
// occupied, in footprint order. Empty means the footprint fits.
func (m *Map) Conflicts(anchor grid.Cell, fp grid.Footprint) []grid.Cell {
	var blocked []grid.Cell
	fp.Each(anchor, func(c grid.Cell) bool {
		if _, ok := m.cells[c]; ok {
			blocked = append(blocked, c)
		}
		return true
	})
	return blocked
}

// Place registers id on every cell of fp anchored at anchor.
// It fails without touching the map if any cell is taken (*FootprintConflict),
// if id is already placed (ErrAlreadyPlaced), or if fp is invalid.
func (m *Map) Place(id ID, anchor grid.Cell, fp grid.Footprint) error {
	if id == "" {
		return ErrEmptyID
	}
	if err := fp.Validate(); err != nil {
		return err
	}
	if p, ok := m.placements[id]; ok {
		return fmt.Errorf("%w: %s at %s", ErrAlreadyPlaced, id, p.Anchor)
	}

	if blocked := m.Conflicts(anchor, fp); len(blocked) > 0 {
		return &FootprintConflict{ID: id, Anchor: anchor, Footprint: fp, Cells: blocked}
	}

	fp.Each(anchor, func(c grid.Cell) bool {
		m.cells[c] = id
		return true
	})
	m.placements[id] = Placement{Anchor: anchor, Footprint: fp}
	return nil
}

// Remove clears exactly the cells of id's footprint. anchor and fp must
// match what the map recorded at placement; a mismatch is ErrDesync and
// nothing is removed.
func (m *Map) Remove(id ID, anchor grid.Cell, fp grid.Footprint) error {
	if id == "" {
		return ErrEmptyID
	}
	p, ok := m.placements[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotPlaced, id)
	}
	if p.Anchor != anchor || p.Footprint != fp {
		return fmt.Errorf("%w: %s recorded %s at %s, caller has %s at %s",
			ErrDesync, id, p.Footprint, p.Anchor, fp, anchor)
	}

	var stray grid.Cell
	intact := true
	fp.Each(anchor, func(c grid.Cell) bool {
		if m.cells[c] != id {
			stray, intact = c, false
			return false
		}
		return true
	})
	if !intact {
		return fmt.Errorf("%w: cell %s of %s not owned by it", ErrDesync, stray, id)
	}

	fp.Each(anchor, func(c grid.Cell) bool {
		delete(m.cells, c)
		return true
	})
	delete(m.placements, id)
	return nil
}

// Move removes id from its recorded placement and places it anchored at to.
// If the placement half fails the occupant stays removed; the caller must
// re-place it explicitly.
func (m *Map) Move(id ID, to grid.Cell) error {
	p, ok := m.placements[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotPlaced, id)
	}
	if err := m.Remove(id, p.Anchor, p.Footprint); err != nil {
		return err
	}
	return m.Place(id, to, p.Footprint)
}

// Len returns the number of occupied cells.
func (m *Map) Len() int {
	return len(m.cells)
}

// Count returns the number of placed occupants.
func (m *Map) Count() int {
	return len(m.placements)
}

// Occupants returns all placed occupants sorted by ID.
func (m *Map) Occupants() []ID {
	ids := make([]ID, 0, len(m.placements))
	for id := range m.placements {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// OccupiedCells returns every occupied cell ordered by X then Y.
func (m *Map) OccupiedCells() []grid.Cell {
	cells := make([]grid.Cell, 0, len(m.cells))
	for c := range m.cells {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Less(cells[j])
	})
	return cells
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	out := &Map{
		cells:      make(map[grid.Cell]ID, len(m.cells)),
		placements: make(map[ID]Placement, len(m.placements)),
	}
	for c, id := range m.cells {
		out.cells[c] = id
	}
	for id, p := range m.placements {
		out.placements[id] = p
	}
	return out
}

// Equal returns true if both maps hold the same occupants on the same cells.
func (m *Map) Equal(other *Map) bool {
	if len(m.cells) != len(other.cells) || len(m.placements) != len(other.placements) {
		return false
	}
	for c, id := range m.cells {
		if other.cells[c] != id {
			return false
		}
	}
	for id, p := range m.placements {
		if op, ok := other.placements[id]; !ok || op != p {
			return false
		}
	}
	return true
}
