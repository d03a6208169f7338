package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/bugdem/strategyboard/internal/storage"
)

var (
	flagLimit int
	flagStats bool
	flagRunID string
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "Show recorded scenario runs",
	Long: `Show recent runs from the history database, optionally for one scenario.

Use --run to print every step of one run, --stats for per-scenario
aggregates and --clear to delete the runs of a scenario.`,
	Example: `  board history
  board history walled --limit 5
  board history --run 3f1c...
  board history --stats
  board history walled --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagStats, "stats", false, "Show per-scenario statistics")
	historyCmd.Flags().StringVar(&flagRunID, "run", "", "Show the steps of one run")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the runs of the given scenario")
}

func runHistory(cmd *cobra.Command, args []string) {
	scenarioName := ""
	if len(args) > 0 {
		scenarioName = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening history: %v", err)
	}
	defer store.Close()

	th := currentTheme()
	switch {
	case flagClear:
		if scenarioName == "" {
			fail("--clear needs a scenario name")
		}
		err = store.ClearRuns(scenarioName)
		if err == nil {
			fmt.Printf("Cleared runs of %s\n", scenarioName)
		}
	case flagRunID != "":
		err = showRun(store, flagRunID, th)
	case flagStats:
		err = showStats(store, th)
	default:
		err = showRecent(store, scenarioName, th)
	}
	if err != nil {
		store.Close()
		fail("%v", err)
	}
}

func showRecent(store *storage.Store, scenarioName string, th Theme) error {
	runs, err := store.RecentRuns(scenarioName, flagLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	maxName := 8
	for _, r := range runs {
		if len(r.Scenario) > maxName {
			maxName = len(r.Scenario)
		}
	}

	fmt.Println(th.Paint(th.Title, "Recent runs"))
	fmt.Println()
	fmt.Printf("  %-36s  %-*s  %-6s  %-7s  %-10s  %s\n", "RUN", maxName, "SCENARIO", "RESULT", "STEPS", "DURATION", "WHEN")
	for _, r := range runs {
		result := th.Paint(th.Pass, "pass  ")
		if !r.OK() {
			result = th.Paint(th.Fail, "fail  ")
		}
		fmt.Printf("  %-36s  %-*s  %s  %-7s  %-10s  %s\n",
			r.RunID, maxName, r.Scenario, result,
			fmt.Sprintf("%d/%d", r.Passed, r.Passed+r.Failed),
			r.Duration.Round(time.Microsecond),
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func showRun(store *storage.Store, runID string, th Theme) error {
	r, err := store.Run(runID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("run not found: %s", runID)
	}

	fmt.Printf("%s %s\n", th.Paint(th.Title, r.Scenario), th.Paint(th.Dim, r.RunID))
	fmt.Printf("%d passed, %d failed in %s at %s\n\n", r.Passed, r.Failed,
		r.Duration.Round(time.Microsecond), r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	for _, st := range r.Steps {
		mark := th.Paint(th.Pass, "ok")
		if !st.Passed {
			mark = th.Paint(th.Fail, "!!")
		}
		fmt.Printf("  %s %2d %-8s %s\n", mark, st.Index, st.Op, st.Detail)
		if st.Failure != "" {
			fmt.Printf("        %s\n", th.Paint(th.Fail, st.Failure))
		}
	}
	return nil
}

func showStats(store *storage.Store, th Theme) error {
	stats, err := store.AllScenarioStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	names := make([]string, 0, len(stats))
	maxName := 8
	for name := range stats {
		names = append(names, name)
		if len(name) > maxName {
			maxName = len(name)
		}
	}
	sort.Strings(names)

	fmt.Println(th.Paint(th.Title, "Scenario statistics"))
	fmt.Println()
	fmt.Printf("  %-*s  %6s  %6s  %-10s  %s\n", maxName, "SCENARIO", "RUNS", "CLEAN", "AVG", "LAST RUN")
	for _, name := range names {
		st := stats[name]
		fmt.Printf("  %-*s  %6d  %6d  %-10s  %s\n", maxName, name, st.Runs, st.CleanRuns,
			st.AvgDuration.Round(time.Microsecond), st.LastRun.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
