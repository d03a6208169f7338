package config

// SizePreset represents a named board size.
type SizePreset string

const (
	SizeSmall    SizePreset = "small"
	SizeStandard SizePreset = "standard"
	SizeLarge    SizePreset = "large"
	SizeOpen     SizePreset = "open"
)

// Presets lists the known size presets in display order.
func Presets() []SizePreset {
	return []SizePreset{SizeSmall, SizeStandard, SizeLarge, SizeOpen}
}

// ApplyPreset modifies the board size based on a preset.
// Returns false and leaves cfg untouched for an unknown preset.
func ApplyPreset(cfg *Config, preset SizePreset) bool {
	switch preset {
	case SizeSmall:
		cfg.Board.Width, cfg.Board.Height = 16, 16
	case SizeStandard:
		cfg.Board.Width, cfg.Board.Height = 32, 32
	case SizeLarge:
		cfg.Board.Width, cfg.Board.Height = 64, 64
		if cfg.Pathfinding.MaxIterations < 4000 {
			cfg.Pathfinding.MaxIterations = 4000
		}
	case SizeOpen:
		cfg.Board.Width, cfg.Board.Height = 0, 0
	default:
		return false
	}
	return true
}
