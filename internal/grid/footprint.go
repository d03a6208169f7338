package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidFootprint is returned for footprints with a non-positive dimension.
var ErrInvalidFootprint = errors.New("grid: footprint must have positive width and height")

// Footprint is the width x height extent, in cells, of a placed object.
type Footprint struct {
	W int
	H int
}

// F is a convenience constructor for Footprint.
func F(w, h int) Footprint {
	return Footprint{W: w, H: h}
}

// String returns a string representation of the footprint.
func (f Footprint) String() string {
	return fmt.Sprintf("%dx%d", f.W, f.H)
}

// Validate returns ErrInvalidFootprint unless both dimensions are positive.
func (f Footprint) Validate() error {
	if f.W <= 0 || f.H <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidFootprint, f)
	}
	return nil
}

// Area returns the number of cells covered by the footprint.
func (f Footprint) Area() int {
	if f.W <= 0 || f.H <= 0 {
		return 0
	}
	return f.W * f.H
}

// Cells returns every cell of the footprint anchored at anchor.
// Ordered by column then row: (x0,y0), (x0,y0+1), ..., (x0+1,y0), ...
func (f Footprint) Cells(anchor Cell) []Cell {
	cells := make([]Cell, 0, f.Area())
	f.Each(anchor, func(c Cell) bool {
		cells = append(cells, c)
		return true
	})
	return cells
}

// Each calls fn for every footprint cell in Cells order.
// Iteration stops early when fn returns false.
func (f Footprint) Each(anchor Cell, fn func(c Cell) bool) {
	for x := 0; x < f.W; x++ {
		for y := 0; y < f.H; y++ {
			if !fn(anchor.Add(x, y)) {
				return
			}
		}
	}
}
