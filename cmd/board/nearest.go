package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bugdem/strategyboard/internal/grid"
	"github.com/bugdem/strategyboard/internal/placement"
)

var flagRadius int

var nearestCmd = &cobra.Command{
	Use:   "nearest <blueprint> <x> <y>",
	Short: "Find the closest free anchor for a blueprint",
	Long: `Search rings of growing radius around (x, y) for the first anchor where
the blueprint fits. Ring candidates are tried with x ascending, then y.`,
	Example: `  board nearest soldier 3 3 --occupy 3,3
  board nearest barracks 0 0 --occupy 0,0:5,5 --radius 10`,
	Args: cobra.ExactArgs(3),
	Run:  runNearest,
}

func init() {
	nearestCmd.Flags().StringArrayVar(&flagOccupy, "occupy", nil, "Occupied cells (x,y or x1,y1:x2,y2)")
	nearestCmd.Flags().StringVar(&flagBlocker, "blocker", "wall", "One-cell blueprint used for --occupy")
	nearestCmd.Flags().IntVar(&flagRadius, "radius", 0, "Largest ring searched (0 = config value)")
}

func runNearest(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	if flagRadius > 0 {
		cfg.Placement.MaxSearchRadius = flagRadius
	}
	target, err := parseCellArgs(args[1], args[2])
	if err != nil {
		fail("%v", err)
	}
	b, err := prepareBoardWith(cfg, flagOccupy, flagBlocker)
	if err != nil {
		fail("%v", err)
	}

	res, found, err := b.FindNearest(args[0], target)
	if err != nil {
		fail("%v", err)
	}

	radius := cfg.Placement.MaxSearchRadius
	if radius <= 0 {
		radius = placement.DefaultMaxRadius
	}

	th := currentTheme()
	if !found {
		fmt.Printf("%s no free anchor for %s within radius %d of %s\n",
			th.Paint(th.Fail, "Not found:"), args[0], radius, target)
		fmt.Println()
		fmt.Print(renderBoard(b, overlay{Marks: []grid.Cell{target}}, th))
		return
	}

	fmt.Printf("%s %s (distance %d)\n", th.Paint(th.Label, "Target:   "), target, target.Chebyshev(res.Anchor))
	printResult(res, th)
	fmt.Println()
	fmt.Print(renderBoard(b, overlay{Available: res.AvailableCells()}, th))
}
