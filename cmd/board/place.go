package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bugdem/strategyboard/internal/grid"
	"github.com/bugdem/strategyboard/internal/placement"
)

var (
	flagOccupy  []string
	flagBlocker string
	flagWorld   bool
)

var placeCmd = &cobra.Command{
	Use:   "place <blueprint> <x> <y>",
	Short: "Check whether a blueprint fits at a cell",
	Long: `Evaluate a blueprint placed with its bottom-left cell at (x, y).

With --world, x and y are a world position for the footprint's centre.
Cells given with --occupy are filled before the check; use x,y for one
cell or x1,y1:x2,y2 for a rectangle.`,
	Example: `  board place barracks 4 4
  board place depot 3 3 --occupy 4,4
  board place barracks 6.0 6.0 --world`,
	Args: cobra.ExactArgs(3),
	Run:  runPlace,
}

func init() {
	placeCmd.Flags().StringArrayVar(&flagOccupy, "occupy", nil, "Occupied cells (x,y or x1,y1:x2,y2)")
	placeCmd.Flags().StringVar(&flagBlocker, "blocker", "wall", "One-cell blueprint used for --occupy")
	placeCmd.Flags().BoolVar(&flagWorld, "world", false, "Treat x y as a world-space centre")
}

func runPlace(cmd *cobra.Command, args []string) {
	b, err := prepareBoard(flagOccupy, flagBlocker)
	if err != nil {
		fail("%v", err)
	}

	var res placement.Result
	if flagWorld {
		x, errX := strconv.ParseFloat(args[1], 64)
		y, errY := strconv.ParseFloat(args[2], 64)
		if errX != nil || errY != nil {
			fail("invalid world position %s %s", args[1], args[2])
		}
		res, err = b.Evaluate(args[0], grid.V(x, y))
	} else {
		anchor, perr := parseCellArgs(args[1], args[2])
		if perr != nil {
			fail("%v", perr)
		}
		res, err = b.EvaluateAt(args[0], anchor)
	}
	if err != nil {
		fail("%v", err)
	}

	th := currentTheme()
	printResult(res, th)
	fmt.Println()
	fmt.Print(renderBoard(b, overlay{
		Available: res.AvailableCells(),
		Blocked:   res.BlockedCells(),
	}, th))
}

// printResult prints the fields of a placement result.
func printResult(res placement.Result, th Theme) {
	verdict := th.Paint(th.Pass, "fits")
	if !res.Feasible {
		verdict = th.Paint(th.Fail, "blocked")
	}
	fmt.Printf("%s %s\n", th.Paint(th.Label, "Result:   "), verdict)
	fmt.Printf("%s %s %s\n", th.Paint(th.Label, "Anchor:   "), res.Anchor, res.Footprint)
	fmt.Printf("%s %s\n", th.Paint(th.Label, "Position: "), res.Position)
	fmt.Printf("%s %d free, %d blocked\n", th.Paint(th.Label, "Cells:    "),
		res.Available.Size(), res.Blocked.Size())
	if res.Blocked.Size() > 0 {
		fmt.Printf("%s %v\n", th.Paint(th.Label, "Blocked:  "), res.BlockedCells())
	}
}
