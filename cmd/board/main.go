// board is a command-line front end for the strategy board spatial core.
//
// Usage:
//
//	board place <blueprint> <x> <y>      - Check whether a blueprint fits at a cell
//	board nearest <blueprint> <x> <y>    - Find the closest free anchor for a blueprint
//	board path <x1> <y1> <x2> <y2>       - Find a route between two cells
//	board run <file|dir>                 - Replay scenario files and record the results
//	board history [scenario]             - Show recorded scenario runs
//	board catalog                        - List placeable blueprints
//
// Global flags:
//
//	--config <path>     - Board config YAML (default search: ~/.strategyboard, ./configs)
//	--catalog <path>    - Blueprint catalog YAML (default: embedded)
//	--size <preset>     - Board size preset: small, standard, large, open
//	--db <path>         - Run history database (default: ~/.strategyboard/runs.db)
//	--log-level <lvl>   - debug, info, warn, error
//	--color <mode>      - auto, always, never
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bugdem/strategyboard/internal/catalog"
	"github.com/bugdem/strategyboard/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagCatalog  string
	flagSize     string
	flagDBPath   string
	flagLogLevel string
	flagColor    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "board",
	Short: "Strategy board - placement and pathfinding on a grid",
	Long: `Strategy board exposes the spatial core of a grid strategy game:
occupancy, placement feasibility, nearest free cell search and A* paths.

Available commands:
  place    - Check whether a blueprint fits at a cell
  nearest  - Find the closest free anchor for a blueprint
  path     - Find a route between two cells
  run      - Replay scenario files and record the results
  history  - Show recorded scenario runs
  catalog  - List placeable blueprints

Examples:
  board catalog
  board place barracks 4 4 --occupy 5,5
  board nearest soldier 3 3 --occupy 3,3
  board path 0 0 9 0 --wall 5,0:5,9
  board run ./scenarios
  board history --stats`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to board config YAML")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to blueprint catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagSize, "size", "", "Board size preset: small, standard, large, open")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.strategyboard/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Colour output: auto, always, never")

	// Add subcommands
	rootCmd.AddCommand(placeCmd)
	rootCmd.AddCommand(nearestCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(catalogCmd)
}

// loadConfig loads the board config and applies --size.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagSize != "" && !config.ApplyPreset(&cfg, config.SizePreset(flagSize)) {
		return cfg, fmt.Errorf("unknown size preset %q (valid: %v)", flagSize, config.Presets())
	}
	return cfg, nil
}

// loadCatalog loads --catalog or the embedded default.
func loadCatalog() (*catalog.Catalog, error) {
	return catalog.Load(flagCatalog)
}

// newLogger creates the stderr logger used by every command.
func newLogger() *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.WarnLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "board",
		Level:           level,
	})
}

// useColor decides whether output is styled.
func useColor() bool {
	switch flagColor {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
