package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Board.Width < 0 || c.Board.Height < 0 {
		return fmt.Errorf("%w: board size %dx%d must not be negative", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}
	if (c.Board.Width == 0) != (c.Board.Height == 0) {
		return fmt.Errorf("%w: board width and height must both be set or both be 0", ErrInvalidConfig)
	}
	if c.Board.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size must be positive, got %v", ErrInvalidConfig, c.Board.CellSize)
	}
	if c.Placement.MaxSearchRadius < 0 {
		return fmt.Errorf("%w: max_search_radius must not be negative", ErrInvalidConfig)
	}
	switch c.Pathfinding.Mode {
	case "four", "eight":
	default:
		return fmt.Errorf("%w: unknown pathfinding mode %q", ErrInvalidConfig, c.Pathfinding.Mode)
	}
	if c.Pathfinding.MaxIterations <= 0 {
		return fmt.Errorf("%w: max_iterations must be positive", ErrInvalidConfig)
	}
	return nil
}
