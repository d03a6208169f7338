package main

import (
	"fmt"

	"github.com/bugdem/strategyboard/internal/board"
	"github.com/bugdem/strategyboard/internal/config"
	"github.com/bugdem/strategyboard/internal/grid"
)

// newBoard builds an empty board from cfg and the --catalog blueprints.
func newBoard(cfg config.Config) (*board.Board, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	return board.New(cfg, cat, newLogger())
}

// blockCells fills each cell with a one-cell blueprint.
func blockCells(b *board.Board, blocker string, cells []grid.Cell) error {
	bp, err := b.Catalog().Get(blocker)
	if err != nil {
		return err
	}
	if bp.Footprint != grid.F(1, 1) {
		return fmt.Errorf("blocker %q must be 1x1, has footprint %s", blocker, bp.Footprint)
	}
	for _, c := range cells {
		if _, ok := b.OccupantAt(c); ok {
			continue
		}
		if _, err := b.Place(blocker, c); err != nil {
			return fmt.Errorf("block %s: %w", c, err)
		}
	}
	return nil
}

// prepareBoard loads the config, builds a board and blocks the given cell
// specs.
func prepareBoard(specs []string, blocker string) (*board.Board, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return prepareBoardWith(cfg, specs, blocker)
}

func prepareBoardWith(cfg config.Config, specs []string, blocker string) (*board.Board, error) {
	cells, err := parseCellSpecs(specs)
	if err != nil {
		return nil, err
	}
	b, err := newBoard(cfg)
	if err != nil {
		return nil, err
	}
	if err := blockCells(b, blocker, cells); err != nil {
		return nil, err
	}
	return b, nil
}
