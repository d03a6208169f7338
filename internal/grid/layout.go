package grid

import (
	"fmt"
	"math"
)

// Vec is a continuous world-space position.
type Vec struct {
	X float64
	Y float64
}

// V is a convenience constructor for Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns the component-wise sum.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// String returns a string representation of the position.
func (v Vec) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}

// Layout maps between world positions and cells.
type Layout interface {
	// WorldToCell returns the cell containing p.
	WorldToCell(p Vec) Cell
	// CellCenter returns the world position of the centre of c.
	CellCenter(c Cell) Vec
	// CellSize returns the world extent of a single cell.
	CellSize() Vec
}

// Bounds decides whether a cell is part of the board.
type Bounds interface {
	Exists(c Cell) bool
}

// Unbounded accepts every cell.
type Unbounded struct{}

// Exists implements Bounds.
func (Unbounded) Exists(Cell) bool { return true }

// UniformLayout is a rectangular grid of equally sized cells whose cell
// (0,0) has its bottom-left corner at Origin.
type UniformLayout struct {
	Origin Vec
	Size   Vec
}

// NewUniformLayout creates a layout with square cells of the given size.
func NewUniformLayout(origin Vec, cellSize float64) UniformLayout {
	return UniformLayout{Origin: origin, Size: Vec{X: cellSize, Y: cellSize}}
}

// WorldToCell implements Layout.
func (l UniformLayout) WorldToCell(p Vec) Cell {
	return Cell{
		X: int(math.Floor((p.X - l.Origin.X) / l.Size.X)),
		Y: int(math.Floor((p.Y - l.Origin.Y) / l.Size.Y)),
	}
}

// CellCenter implements Layout.
func (l UniformLayout) CellCenter(c Cell) Vec {
	return Vec{
		X: l.Origin.X + (float64(c.X)+0.5)*l.Size.X,
		Y: l.Origin.Y + (float64(c.Y)+0.5)*l.Size.Y,
	}
}

// CellSize implements Layout.
func (l UniformLayout) CellSize() Vec {
	return l.Size
}

// CenterOffset returns the offset from the centre of a footprint's anchor
// cell to the centre of the whole footprint.
func CenterOffset(l Layout, f Footprint) Vec {
	size := l.CellSize()
	return Vec{
		X: size.X * float64(f.W-1) * 0.5,
		Y: size.Y * float64(f.H-1) * 0.5,
	}
}

// AnchorFor returns the bottom-left cell of a footprint centred at centre.
func AnchorFor(l Layout, f Footprint, centre Vec) Cell {
	return l.WorldToCell(centre.Sub(CenterOffset(l, f)))
}

// PositionFor returns the world centre of a footprint anchored at anchor.
// AnchorFor(l, f, PositionFor(l, f, a)) == a for every anchor a.
func PositionFor(l Layout, f Footprint, anchor Cell) Vec {
	return l.CellCenter(anchor).Add(CenterOffset(l, f))
}
