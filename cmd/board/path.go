package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bugdem/strategyboard/internal/grid"
	"github.com/bugdem/strategyboard/internal/pathfind"
)

var (
	flagWalls         []string
	flagMode          string
	flagMaxIterations int
)

var pathCmd = &cobra.Command{
	Use:   "path <x1> <y1> <x2> <y2>",
	Short: "Find a route between two cells",
	Long: `Run A* from (x1, y1) to (x2, y2) and print the route, its cost and how
the search ended: found, unreachable, invalid-endpoint or exhausted.

Straight steps cost 10 and diagonal steps 14. Walls are given with --wall
as x,y or x1,y1:x2,y2.`,
	Example: `  board path 0 0 9 0 --wall 5,0:5,8
  board path 0 0 9 9 --mode four
  board path 0 0 60 0 --max-iterations 50`,
	Args: cobra.ExactArgs(4),
	Run:  runPath,
}

func init() {
	pathCmd.Flags().StringArrayVar(&flagWalls, "wall", nil, "Wall cells (x,y or x1,y1:x2,y2)")
	pathCmd.Flags().StringVar(&flagBlocker, "blocker", "wall", "One-cell blueprint used for --wall")
	pathCmd.Flags().StringVar(&flagMode, "mode", "", "Neighbourhood: four or eight (default from config)")
	pathCmd.Flags().IntVar(&flagMaxIterations, "max-iterations", 0, "Expansion ceiling (0 = config value)")
}

func runPath(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	if flagMode != "" {
		mode, ok := pathfind.ParseMode(flagMode)
		if !ok {
			fail("unknown mode %q (valid: four, eight)", flagMode)
		}
		cfg.Pathfinding.Mode = mode.String()
	}
	if flagMaxIterations > 0 {
		cfg.Pathfinding.MaxIterations = flagMaxIterations
	}

	start, err := parseCellArgs(args[0], args[1])
	if err != nil {
		fail("%v", err)
	}
	goal, err := parseCellArgs(args[2], args[3])
	if err != nil {
		fail("%v", err)
	}
	b, err := prepareBoardWith(cfg, flagWalls, flagBlocker)
	if err != nil {
		fail("%v", err)
	}

	res := b.Search(start, goal)

	th := currentTheme()
	outcome := th.Paint(th.Pass, res.Outcome.String())
	if res.Outcome != pathfind.Found {
		outcome = th.Paint(th.Fail, res.Outcome.String())
	}
	fmt.Printf("%s %s -> %s (%s)\n", th.Paint(th.Label, "Route:    "), start, goal, cfg.Pathfinding.Mode)
	fmt.Printf("%s %s\n", th.Paint(th.Label, "Outcome:  "), outcome)
	fmt.Printf("%s %d\n", th.Paint(th.Label, "Expanded: "), res.Expanded)
	if res.Outcome == pathfind.Found {
		fmt.Printf("%s %d (%d cells, estimate %d)\n", th.Paint(th.Label, "Cost:     "),
			res.Cost, len(res.Path), pathfind.Heuristic(start, goal))
	}
	fmt.Println()
	fmt.Print(renderBoard(b, overlay{
		Paths: [][]grid.Cell{res.Path},
		Marks: []grid.Cell{start, goal},
	}, th))
}
