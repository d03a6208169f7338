package board

import (
	"fmt"

	"github.com/bugdem/strategyboard/internal/grid"
	"github.com/bugdem/strategyboard/internal/occupancy"
	"github.com/bugdem/strategyboard/internal/pathfind"
	"github.com/bugdem/strategyboard/internal/placement"
)

// Route is the outcome of a move order.
type Route struct {
	Unit    occupancy.ID
	From    grid.Cell
	To      grid.Cell // Goal anchor; differs from the ordered target when that was taken
	Path    []grid.Cell
	Cost    int
	Outcome pathfind.Outcome
}

// Spawn places a new unit produced by a building. The unit goes to the
// free cell nearest the producer's spawn point (anchor + spawn offset).
func (b *Board) Spawn(producerID occupancy.ID, unit string) (Occupant, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	producer, ok := b.occupants[producerID]
	if !ok {
		return Occupant{}, fmt.Errorf("%w: %s", ErrUnknownOccupant, producerID)
	}
	p := producer.Blueprint.Producer
	if p == nil {
		return Occupant{}, fmt.Errorf("%w: %s", ErrNotProducer, producer.Blueprint.Name)
	}
	if !producer.Blueprint.CanProduce(unit) {
		return Occupant{}, fmt.Errorf("%w: %s cannot produce %q", ErrCannotProduce, producer.Blueprint.Name, unit)
	}
	bp, err := b.catalog.Get(unit)
	if err != nil {
		return Occupant{}, err
	}

	spawn := producer.Anchor.AddCell(p.SpawnOffset)
	res, found, err := b.finder.FindNearest(spawn, bp.Footprint, b.occ)
	if err != nil {
		return Occupant{}, err
	}
	if !found {
		return Occupant{}, fmt.Errorf("%w: %s at %s", ErrNoSpawnCell, producer.Blueprint.Name, spawn)
	}

	o, err := b.place(bp, res.Anchor)
	if err != nil {
		return Occupant{}, err
	}
	b.log.Debug("spawned", "producer", producerID, "unit", o.ID, "blueprint", unit, "anchor", o.Anchor)
	return o, nil
}

// Order moves a mobile unit towards target. When target is taken the unit
// is routed to the nearest free anchor around it. Paths are computed for
// the unit's anchor cell, and every step must fit the unit's whole
// footprint; the unit's own cells count as free.
// On failure the unit stays where it was.
func (b *Board) Order(unitID occupancy.ID, target grid.Cell) (Route, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.occupants[unitID]
	if !ok {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownOccupant, unitID)
	}
	if o.Blueprint.Mobile == nil {
		return Route{}, fmt.Errorf("%w: %s", ErrNotMobile, o.Blueprint.Name)
	}

	route := Route{Unit: unitID, From: o.Anchor}

	goal, found, err := b.finder.FindNearest(target, o.Blueprint.Footprint, b.occ, placement.WithIgnore(unitID))
	if err != nil {
		return route, err
	}
	if !found {
		return route, fmt.Errorf("%w: no free cell near %s", ErrNoRoute, target)
	}
	route.To = goal.Anchor

	res := b.search(o.Anchor, goal.Anchor, unitID, o.Blueprint.Footprint)
	route.Outcome = res.Outcome
	if res.Outcome != pathfind.Found {
		return route, fmt.Errorf("%w: %s from %s to %s (%s)", ErrNoRoute, unitID, o.Anchor, goal.Anchor, res.Outcome)
	}
	route.Path = res.Path
	route.Cost = res.Cost

	if err := b.occ.Move(unitID, goal.Anchor); err != nil {
		// A failed move leaves the unit off the map; mirror that here.
		if _, placed := b.occ.Placement(unitID); !placed {
			delete(b.occupants, unitID)
		}
		b.logFailure("move", unitID, err)
		return route, err
	}
	o.Anchor = goal.Anchor
	b.occupants[unitID] = o

	b.log.Debug("moved", "id", unitID, "from", route.From, "to", route.To, "steps", len(route.Path)-1, "cost", route.Cost)
	return route, nil
}
