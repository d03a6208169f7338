package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/bugdem/strategyboard/internal/board"
	"github.com/bugdem/strategyboard/internal/catalog"
	"github.com/bugdem/strategyboard/internal/grid"
)

// unboundedMargin pads the drawn window around interesting cells when the
// board has no edges.
const unboundedMargin = 2

type glyph struct {
	text  string
	style lipgloss.Style
}

// overlay marks cells drawn on top of the board contents.
type overlay struct {
	Available []grid.Cell
	Blocked   []grid.Cell
	Paths     [][]grid.Cell
	Marks     []grid.Cell // Drawn as '@'
}

// cells returns every overlay cell.
func (o overlay) cells() []grid.Cell {
	var out []grid.Cell
	out = append(out, o.Available...)
	out = append(out, o.Blocked...)
	for _, p := range o.Paths {
		out = append(out, p...)
	}
	return append(out, o.Marks...)
}

// renderBoard creates an ASCII picture of the board.
//
// Format:
//   - Rows are drawn top-down, so the highest Y comes first
//   - Empty cells are '.', buildings are the upper-case initial of their
//     blueprint, units the lower-case initial
//   - Overlay: available 'o', blocked 'x', path '*', marks '@'
func renderBoard(b *board.Board, ov overlay, th Theme) string {
	var sb strings.Builder

	win := window(b, ov)

	glyphs := make(map[grid.Cell]glyph)
	for _, occ := range b.Occupants() {
		g := glyph{occupantGlyph(occ), th.Building}
		if occ.Kind() == catalog.KindUnit {
			g.style = th.Unit
		}
		for _, c := range occ.Cells() {
			glyphs[c] = g
		}
	}
	for _, p := range ov.Paths {
		for _, c := range p {
			glyphs[c] = glyph{"*", th.Path}
		}
	}
	for _, c := range ov.Available {
		glyphs[c] = glyph{"o", th.Available}
	}
	for _, c := range ov.Blocked {
		glyphs[c] = glyph{"x", th.Blocked}
	}
	for _, c := range ov.Marks {
		glyphs[c] = glyph{"@", th.Endpoint}
	}

	// Header
	sb.WriteString(th.Paint(th.Label, fmt.Sprintf("Cells x %d..%d, y %d..%d | Occupants: %d",
		win.X, win.Right()-1, win.Y, win.Top()-1, b.Len())))
	sb.WriteString("\n")

	for y := win.Top() - 1; y >= win.Y; y-- {
		sb.WriteString(th.Paint(th.Dim, fmt.Sprintf("%4d ", y)))
		for x := win.X; x < win.Right(); x++ {
			g, ok := glyphs[grid.C(x, y)]
			if !ok {
				g = glyph{".", th.EmptyCell}
			}
			sb.WriteString(th.Paint(g.style, g.text))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// window returns the block of cells to draw: the whole board when it is
// bounded, otherwise everything of interest plus a margin.
func window(b *board.Board, ov overlay) grid.Rect {
	cfg := b.Config().Board
	if cfg.Bounded() {
		return grid.NewRect(0, 0, cfg.Width, cfg.Height)
	}

	cells := ov.cells()
	for _, occ := range b.Occupants() {
		cells = append(cells, occ.Cells()...)
	}
	if len(cells) == 0 {
		return grid.NewRect(-unboundedMargin, -unboundedMargin, 2*unboundedMargin+1, 2*unboundedMargin+1)
	}
	minX, minY, maxX, maxY := cells[0].X, cells[0].Y, cells[0].X, cells[0].Y
	for _, c := range cells[1:] {
		minX, maxX = grid.Min(minX, c.X), grid.Max(maxX, c.X)
		minY, maxY = grid.Min(minY, c.Y), grid.Max(maxY, c.Y)
	}
	return grid.NewRect(minX-unboundedMargin, minY-unboundedMargin,
		maxX-minX+1+2*unboundedMargin, maxY-minY+1+2*unboundedMargin)
}

// occupantGlyph returns the raw glyph for an occupant.
func occupantGlyph(o board.Occupant) string {
	r := '#'
	for _, ch := range o.Blueprint.Name {
		r = ch
		break
	}
	if o.Kind() == catalog.KindUnit {
		return string(unicode.ToLower(r))
	}
	return string(unicode.ToUpper(r))
}
