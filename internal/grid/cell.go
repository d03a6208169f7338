// Package grid provides the integer cell and footprint types shared by the
// occupancy map, placement queries and the pathfinder, together with the
// board-geometry collaborators (cell/world mapping and board bounds).
// It has no external dependencies.
package grid

import "fmt"

// Cell identifies one grid cell.
// X increases to the right, Y increases upward (bottom-left origin).
type Cell struct {
	X int
	Y int
}

// C is a convenience constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Cell offset by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// AddCell returns the sum of two cells.
func (c Cell) AddCell(other Cell) Cell {
	return Cell{X: c.X + other.X, Y: c.Y + other.Y}
}

// Delta returns the absolute per-axis distance to another cell.
func (c Cell) Delta(other Cell) (dx, dy int) {
	return Abs(c.X - other.X), Abs(c.Y - other.Y)
}

// Chebyshev returns the ring distance to another cell.
func (c Cell) Chebyshev(other Cell) int {
	dx, dy := c.Delta(other)
	return Max(dx, dy)
}

// Less orders cells by X then Y. Used wherever output must be deterministic.
func (c Cell) Less(other Cell) bool {
	if c.X != other.X {
		return c.X < other.X
	}
	return c.Y < other.Y
}
