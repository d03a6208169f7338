package grid

// Rect represents an axis-aligned block of cells.
// (X, Y) is the bottom-left cell; the rectangle spans [X, X+W) x [Y, Y+H).
type Rect struct {
	X, Y int // Bottom-left cell
	W, H int // Width and height in cells
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Top returns the y-coordinate one past the top edge.
func (r Rect) Top() int {
	return r.Y + r.H
}

// Contains returns true if the cell is inside this rectangle.
func (r Rect) Contains(c Cell) bool {
	return c.X >= r.X && c.X < r.Right() && c.Y >= r.Y && c.Y < r.Top()
}

// Exists implements Bounds.
func (r Rect) Exists(c Cell) bool {
	return r.Contains(c)
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
