package config

import (
	_ "embed"
)

//go:embed defaults/board.yaml
var defaultBoardYAML []byte

// Default returns the hardcoded board configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:    32,
			Height:   32,
			CellSize: 1.0,
		},
		Placement: PlacementConfig{
			MaxSearchRadius: 64,
		},
		Pathfinding: PathfindingConfig{
			Mode:          "eight",
			MaxIterations: 1000,
		},
	}
}

// DefaultYAML returns the embedded default board.yaml.
func DefaultYAML() []byte {
	return defaultBoardYAML
}
