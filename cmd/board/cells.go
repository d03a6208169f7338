package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bugdem/strategyboard/internal/grid"
)

// parseCellArgs parses two positional integer arguments.
func parseCellArgs(xs, ys string) (grid.Cell, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return grid.Cell{}, fmt.Errorf("invalid x %q", xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return grid.Cell{}, fmt.Errorf("invalid y %q", ys)
	}
	return grid.C(x, y), nil
}

// parseCell parses "x,y".
func parseCell(s string) (grid.Cell, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return grid.Cell{}, fmt.Errorf("invalid cell %q (want x,y)", s)
	}
	return parseCellArgs(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
}

// parseCellSpecs expands "x,y" and "x1,y1:x2,y2" (inclusive rectangle)
// specs into cells.
func parseCellSpecs(specs []string) ([]grid.Cell, error) {
	var cells []grid.Cell
	for _, spec := range specs {
		from, to, isRange := strings.Cut(spec, ":")
		a, err := parseCell(from)
		if err != nil {
			return nil, err
		}
		if !isRange {
			cells = append(cells, a)
			continue
		}
		b, err := parseCell(to)
		if err != nil {
			return nil, err
		}
		for x := grid.Min(a.X, b.X); x <= grid.Max(a.X, b.X); x++ {
			for y := grid.Min(a.Y, b.Y); y <= grid.Max(a.Y, b.Y); y++ {
				cells = append(cells, grid.C(x, y))
			}
		}
	}
	return cells, nil
}
