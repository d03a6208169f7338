// Package config provides YAML-based board configuration loading and
// size presets for the strategy board.
package config

// Config contains all configuration for a board.
type Config struct {
	Board       BoardConfig       `yaml:"board"`
	Placement   PlacementConfig   `yaml:"placement"`
	Pathfinding PathfindingConfig `yaml:"pathfinding"`
}

// BoardConfig defines board geometry.
type BoardConfig struct {
	Width    int     `yaml:"width"`     // 0 = unbounded
	Height   int     `yaml:"height"`    // 0 = unbounded
	CellSize float64 `yaml:"cell_size"` // World units per cell
	Origin   Point   `yaml:"origin"`    // World position of cell (0,0)'s bottom-left corner
}

// Point is a world-space position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PlacementConfig defines placement search parameters.
type PlacementConfig struct {
	MaxSearchRadius int `yaml:"max_search_radius"`
}

// PathfindingConfig defines pathfinder parameters.
type PathfindingConfig struct {
	Mode          string `yaml:"mode"` // "four" or "eight"
	MaxIterations int    `yaml:"max_iterations"`
}

// Bounded reports whether the board has a finite size.
func (b BoardConfig) Bounded() bool {
	return b.Width > 0 && b.Height > 0
}
