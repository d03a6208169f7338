package board

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bugdem/strategyboard/internal/catalog"
	"github.com/bugdem/strategyboard/internal/config"
	"github.com/bugdem/strategyboard/internal/grid"
	"github.com/bugdem/strategyboard/internal/occupancy"
	"github.com/bugdem/strategyboard/internal/pathfind"
)

func newTestBoard(t *testing.T, w, h int) *Board {
	t.Helper()
	cfg := config.Default()
	cfg.Board.Width, cfg.Board.Height = w, h
	return newBoardWithConfig(t, cfg, nil)
}

func newBoardWithConfig(t *testing.T, cfg config.Config, logger *log.Logger) *Board {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() failed: %v", err)
	}
	b, err := New(cfg, cat, logger)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return b
}

func mustPlace(t *testing.T, b *Board, name string, anchor grid.Cell) Occupant {
	t.Helper()
	o, err := b.Place(name, anchor)
	if err != nil {
		t.Fatalf("Place(%s, %v) failed: %v", name, anchor, err)
	}
	return o
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Pathfinding.Mode = "hex"
	if _, err := New(cfg, nil, nil); err == nil {
		t.Error("New() should reject an unknown mode")
	}
}

func TestPlaceAndRemove(t *testing.T) {
	b := newTestBoard(t, 32, 32)

	plant := mustPlace(t, b, "power_plant", grid.C(2, 2))
	if b.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", b.Len())
	}
	if got, ok := b.OccupantAt(grid.C(3, 4)); !ok || got.ID != plant.ID {
		t.Errorf("OccupantAt((3,4)) = %v, %v, expected power_plant", got.ID, ok)
	}
	if _, ok := b.OccupantAt(grid.C(4, 2)); ok {
		t.Error("(4,2) should be free")
	}
	if len(plant.Cells()) != 6 || plant.Kind() != catalog.KindBuilding {
		t.Errorf("occupant = %+v", plant)
	}

	if err := b.Remove(plant.ID); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if b.Len() != 0 || b.Snapshot().Len() != 0 {
		t.Error("board not empty after Remove()")
	}
	if err := b.Remove(plant.ID); !errors.Is(err, ErrUnknownOccupant) {
		t.Errorf("second Remove() = %v, expected ErrUnknownOccupant", err)
	}
}

func TestPlaceRejections(t *testing.T) {
	b := newTestBoard(t, 32, 32)
	mustPlace(t, b, "power_plant", grid.C(2, 2))

	tests := []struct {
		name   string
		bp     string
		anchor grid.Cell
		err    error
	}{
		{"overlap", "power_plant", grid.C(3, 3), occupancy.ErrOccupied},
		{"out of bounds", "power_plant", grid.C(31, 31), ErrOutOfBounds},
		{"negative", "soldier", grid.C(-1, 0), ErrOutOfBounds},
		{"unknown blueprint", "castle", grid.C(10, 10), catalog.ErrUnknownBlueprint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.Place(tt.bp, tt.anchor); !errors.Is(err, tt.err) {
				t.Errorf("Place() = %v, expected %v", err, tt.err)
			}
			if b.Len() != 1 {
				t.Errorf("Len() = %d after rejected place, expected 1", b.Len())
			}
		})
	}
}

func TestPlaceAt(t *testing.T) {
	b := newTestBoard(t, 32, 32)

	o, err := b.PlaceAt("power_plant", grid.V(3.0, 3.5))
	if err != nil {
		t.Fatalf("PlaceAt() failed: %v", err)
	}
	if o.Anchor != grid.C(2, 2) {
		t.Errorf("Anchor = %v, expected (2,2)", o.Anchor)
	}
}

func TestEvaluateThroughBoard(t *testing.T) {
	b := newTestBoard(t, 32, 32)
	mustPlace(t, b, "soldier", grid.C(4, 4))

	res, err := b.EvaluateAt("power_plant", grid.C(3, 3))
	if err != nil {
		t.Fatal(err)
	}
	if res.Feasible {
		t.Error("power_plant over the soldier should be infeasible")
	}
	if res.Available.Size() != 5 || res.Blocked.Size() != 1 || !res.Blocked.Has(grid.C(4, 4)) {
		t.Errorf("available=%v blocked=%v", res.AvailableCells(), res.BlockedCells())
	}

	// Same footprint addressed by its world centre.
	res2, err := b.Evaluate("power_plant", grid.PositionFor(b.Layout(), grid.F(2, 3), grid.C(3, 3)))
	if err != nil {
		t.Fatal(err)
	}
	if res2.Anchor != grid.C(3, 3) || res2.Feasible {
		t.Errorf("Evaluate() = anchor %v feasible %v", res2.Anchor, res2.Feasible)
	}

	near, found, err := b.FindNearest("soldier", grid.C(4, 4))
	if err != nil || !found {
		t.Fatalf("FindNearest() = %v, %v", found, err)
	}
	if near.Anchor != grid.C(3, 3) {
		t.Errorf("FindNearest() anchor = %v, expected (3,3)", near.Anchor)
	}
}

func TestSpawn(t *testing.T) {
	b := newTestBoard(t, 32, 32)
	barracks := mustPlace(t, b, "barracks", grid.C(5, 5))

	first, err := b.Spawn(barracks.ID, "soldier")
	if err != nil {
		t.Fatalf("Spawn() failed: %v", err)
	}
	if first.Anchor != grid.C(5, 4) {
		t.Errorf("first spawn at %v, expected (5,4)", first.Anchor)
	}

	second, err := b.Spawn(barracks.ID, "scout")
	if err != nil {
		t.Fatalf("Spawn() failed: %v", err)
	}
	if second.Anchor != grid.C(4, 3) {
		t.Errorf("second spawn at %v, expected (4,3)", second.Anchor)
	}
	if second.Blueprint.Mobile == nil {
		t.Error("spawned scout should be mobile")
	}
}

func TestSpawnErrors(t *testing.T) {
	b := newTestBoard(t, 32, 32)
	barracks := mustPlace(t, b, "barracks", grid.C(5, 5))
	plant := mustPlace(t, b, "power_plant", grid.C(20, 20))

	tests := []struct {
		name     string
		producer occupancy.ID
		unit     string
		err      error
	}{
		{"unknown producer", "ghost", "soldier", ErrUnknownOccupant},
		{"not a producer", plant.ID, "soldier", ErrNotProducer},
		{"not in list", barracks.ID, "wall", ErrCannotProduce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.Spawn(tt.producer, tt.unit); !errors.Is(err, tt.err) {
				t.Errorf("Spawn() = %v, expected %v", err, tt.err)
			}
		})
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", b.Len())
	}
}

func TestOrder(t *testing.T) {
	b := newTestBoard(t, 32, 32)
	mustPlace(t, b, "barracks", grid.C(5, 5))
	soldier := mustPlace(t, b, "soldier", grid.C(5, 4))

	route, err := b.Order(soldier.ID, grid.C(10, 4))
	if err != nil {
		t.Fatalf("Order() failed: %v", err)
	}
	if route.Outcome != pathfind.Found || route.To != grid.C(10, 4) {
		t.Errorf("route = %+v", route)
	}
	if route.Cost != 50 || len(route.Path) != 6 {
		t.Errorf("route cost %d over %d cells, expected 50 over 6", route.Cost, len(route.Path))
	}

	if got, ok := b.OccupantAt(grid.C(10, 4)); !ok || got.ID != soldier.ID {
		t.Error("soldier not at (10,4) after order")
	}
	if _, ok := b.OccupantAt(grid.C(5, 4)); ok {
		t.Error("(5,4) should be free after the soldier left")
	}
	if o, _ := b.Occupant(soldier.ID); o.Anchor != grid.C(10, 4) {
		t.Errorf("registry anchor = %v, expected (10,4)", o.Anchor)
	}
}

func TestOrderToOccupiedTarget(t *testing.T) {
	b := newTestBoard(t, 32, 32)
	soldier := mustPlace(t, b, "soldier", grid.C(2, 2))
	mustPlace(t, b, "wall", grid.C(6, 2))

	route, err := b.Order(soldier.ID, grid.C(6, 2))
	if err != nil {
		t.Fatalf("Order() failed: %v", err)
	}
	if route.To != grid.C(5, 1) {
		t.Errorf("route.To = %v, expected nearest free (5,1)", route.To)
	}
}

func TestOrderErrors(t *testing.T) {
	b := newTestBoard(t, 8, 8)
	for y := 0; y < 8; y++ {
		mustPlace(t, b, "wall", grid.C(4, y))
	}
	soldier := mustPlace(t, b, "soldier", grid.C(1, 1))
	building, _ := b.OccupantAt(grid.C(4, 0))

	route, err := b.Order(building.ID, grid.C(0, 0))
	if !errors.Is(err, ErrNotMobile) {
		t.Errorf("Order(wall) = %v, expected ErrNotMobile", err)
	}
	if route.Outcome != pathfind.NotSearched {
		t.Errorf("Order(wall) Outcome = %v, expected not-searched", route.Outcome)
	}
	if _, err := b.Order("ghost", grid.C(0, 0)); !errors.Is(err, ErrUnknownOccupant) {
		t.Errorf("Order(ghost) = %v, expected ErrUnknownOccupant", err)
	}

	route, err = b.Order(soldier.ID, grid.C(6, 6))
	if !errors.Is(err, ErrNoRoute) {
		t.Fatalf("Order() = %v, expected ErrNoRoute", err)
	}
	if route.Outcome != pathfind.Unreachable {
		t.Errorf("Outcome = %v, expected unreachable", route.Outcome)
	}
	if o, _ := b.Occupant(soldier.ID); o.Anchor != grid.C(1, 1) {
		t.Errorf("soldier moved to %v after a failed order", o.Anchor)
	}
	if got, ok := b.OccupantAt(grid.C(1, 1)); !ok || got.ID != soldier.ID {
		t.Error("soldier no longer on the map after a failed order")
	}
}

func newTankBoard(t *testing.T, gap ...int) (*Board, Occupant) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() failed: %v", err)
	}
	tank := catalog.Blueprint{
		Name:      "tank",
		Kind:      catalog.KindUnit,
		Footprint: grid.F(2, 2),
		Mobile:    &catalog.Mobile{Speed: 1},
	}
	if err := cat.Register(tank); err != nil {
		t.Fatalf("Register(tank) failed: %v", err)
	}

	cfg := config.Default()
	cfg.Board.Width, cfg.Board.Height = 10, 10
	cfg.Pathfinding.Mode = "four"
	b, err := New(cfg, cat, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	open := make(map[int]bool)
	for _, y := range gap {
		open[y] = true
	}
	for y := 0; y < 10; y++ {
		if !open[y] {
			mustPlace(t, b, "wall", grid.C(5, y))
		}
	}
	return b, mustPlace(t, b, "tank", grid.C(0, 4))
}

func TestOrderWideUnitNeedsWideGap(t *testing.T) {
	b, tank := newTankBoard(t, 5)

	route, err := b.Order(tank.ID, grid.C(8, 4))
	if !errors.Is(err, ErrNoRoute) {
		t.Fatalf("Order() = %v, %v, expected ErrNoRoute through a one-cell gap", route.Path, err)
	}
	if route.Outcome != pathfind.Unreachable {
		t.Errorf("Outcome = %v, expected unreachable", route.Outcome)
	}
	if o, _ := b.Occupant(tank.ID); o.Anchor != grid.C(0, 4) {
		t.Errorf("tank moved to %v after a failed order", o.Anchor)
	}
}

func TestOrderWideUnitFootprintStaysClear(t *testing.T) {
	b, tank := newTankBoard(t, 5, 6)

	route, err := b.Order(tank.ID, grid.C(8, 4))
	if err != nil {
		t.Fatalf("Order() failed: %v", err)
	}
	if route.To != grid.C(8, 4) {
		t.Errorf("To = %v, expected (8,4)", route.To)
	}
	for _, anchor := range route.Path {
		for _, c := range grid.F(2, 2).Cells(anchor) {
			if c.X == 5 && c.Y != 5 && c.Y != 6 {
				t.Fatalf("route step %v puts the tank on wall cell %v; path %v", anchor, c, route.Path)
			}
			if !b.CellExists(c) {
				t.Fatalf("route step %v leaves the board at %v", anchor, c)
			}
		}
	}
	if got, ok := b.OccupantAt(grid.C(9, 5)); !ok || got.ID != tank.ID {
		t.Error("tank footprint not at its goal")
	}
}

func TestTraversability(t *testing.T) {
	b := newTestBoard(t, 10, 10)
	mustPlace(t, b, "wall", grid.C(3, 3))

	var tr pathfind.Traversability = b
	tests := []struct {
		cell   grid.Cell
		exists bool
		occupy bool
	}{
		{grid.C(0, 0), true, true},
		{grid.C(3, 3), true, false},
		{grid.C(10, 0), false, false},
		{grid.C(-1, 5), false, false},
	}

	for _, tt := range tests {
		if got := tr.CellExists(tt.cell); got != tt.exists {
			t.Errorf("CellExists(%v) = %v, expected %v", tt.cell, got, tt.exists)
		}
		if got := tr.CanOccupy(tt.cell); got != tt.occupy {
			t.Errorf("CanOccupy(%v) = %v, expected %v", tt.cell, got, tt.occupy)
		}
	}

	if path := b.FindPath(grid.C(2, 3), grid.C(4, 3)); len(path) != 3 || path[1] == grid.C(3, 3) {
		t.Errorf("FindPath() = %v, expected a 3-cell detour", path)
	}
}

func TestCellAt(t *testing.T) {
	cfg := config.Default()
	cfg.Board.CellSize = 2
	cfg.Board.Origin = config.Point{X: -4, Y: -4}
	b := newBoardWithConfig(t, cfg, nil)

	if got := b.CellAt(grid.V(-3.9, 0.5)); got != grid.C(0, 2) {
		t.Errorf("CellAt() = %v, expected (0,2)", got)
	}
	if got := b.CellCenter(grid.C(0, 2)); got != grid.V(-3, 1) {
		t.Errorf("CellCenter() = %v, expected (-3,1)", got)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	cfg := config.Default()
	cfg.Board.Width, cfg.Board.Height = 0, 0
	cfg.Pathfinding.MaxIterations = 5
	b := newBoardWithConfig(t, cfg, logger)

	mustPlace(t, b, "soldier", grid.C(0, 0))
	if !strings.Contains(buf.String(), "placed") {
		t.Errorf("expected a placement log line, got %q", buf.String())
	}

	if res := b.Search(grid.C(1, 1), grid.C(40, 1)); res.Outcome != pathfind.Exhausted {
		t.Fatalf("Search() outcome = %v, expected exhausted", res.Outcome)
	}
	if !strings.Contains(buf.String(), "exhausted") {
		t.Errorf("expected an exhaustion warning, got %q", buf.String())
	}
}

func TestConcurrentPlacement(t *testing.T) {
	b := newTestBoard(t, 32, 32)

	var wg sync.WaitGroup
	for x := 0; x < 8; x++ {
		wg.Add(1)
		go func(x int) {
			defer wg.Done()
			for y := 0; y < 4; y++ {
				if _, err := b.Place("soldier", grid.C(x, y)); err != nil {
					t.Errorf("Place((%d,%d)) failed: %v", x, y, err)
				}
				b.CanOccupy(grid.C(x, y))
				b.Occupants()
			}
		}(x)
	}
	wg.Wait()

	if b.Len() != 32 {
		t.Errorf("Len() = %d, expected 32", b.Len())
	}
	if b.Snapshot().Count() != 32 {
		t.Errorf("occupancy count = %d, expected 32", b.Snapshot().Count())
	}
}
