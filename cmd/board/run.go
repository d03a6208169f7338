package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bugdem/strategyboard/internal/scenario"
	"github.com/bugdem/strategyboard/internal/storage"
)

var (
	flagNoHistory bool
	flagShow      bool
	flagVerbose   bool
	flagSchema    bool
)

var runCmd = &cobra.Command{
	Use:   "run <file|dir>",
	Short: "Replay scenario files and record the results",
	Long: `Run one scenario file, or every scenario under a directory, on a fresh
board each. Every step is checked against its expectations and the run is
recorded in the history database unless --no-history is set.

Exits with status 1 when any step fails or a scenario cannot run.
With --schema, prints the JSON Schema scenario files are checked against.`,
	Example: `  board run scenarios/skirmish.yaml --show
  board run ./scenarios -v
  board run ./scenarios --no-history
  board run --schema > scenario.schema.json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record runs")
	runCmd.Flags().BoolVar(&flagShow, "show", false, "Draw the final board with found paths")
	runCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "List passing steps too")
	runCmd.Flags().BoolVar(&flagSchema, "schema", false, "Print the scenario JSON Schema and exit")
}

func runRun(cmd *cobra.Command, args []string) {
	if flagSchema {
		os.Stdout.Write(scenario.SchemaJSON())
		return
	}
	if len(args) == 0 {
		fail("run needs a scenario file or directory (or --schema)")
	}

	scenarios, err := loadScenarios(args[0])
	if err != nil {
		fail("%v", err)
	}
	if len(scenarios) == 0 {
		fail("no scenarios found in %s", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	cat, err := loadCatalog()
	if err != nil {
		fail("%v", err)
	}
	runner := scenario.NewRunner(cfg, cat, newLogger())

	var store *storage.Store
	if !flagNoHistory {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fail("opening history: %v", err)
		}
	}

	th := currentTheme()
	failed := 0
	for _, sc := range scenarios {
		report, err := runner.Run(sc)
		if err != nil {
			fmt.Printf("%s %s: %v\n", th.Paint(th.Fail, "ERROR"), sc.Name, err)
			failed++
			continue
		}
		printReport(report, th)
		if !report.OK() {
			failed++
		}

		if store != nil {
			if _, err := store.SaveRun(toRecord(report)); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", err)
			}
		}
	}

	if store != nil {
		store.Close()
	}

	if len(scenarios) > 1 {
		fmt.Printf("\n%d scenarios, %d failed\n", len(scenarios), failed)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// loadScenarios loads a single file or every scenario under a directory.
func loadScenarios(target string) ([]scenario.Scenario, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return scenario.NewLoader(target).LoadAll()
	}
	sc, err := scenario.LoadFile(target)
	if err != nil {
		return nil, err
	}
	return []scenario.Scenario{sc}, nil
}

func printReport(r scenario.Report, th Theme) {
	status := th.Paint(th.Pass, "PASS")
	if !r.OK() {
		status = th.Paint(th.Fail, "FAIL")
	}
	fmt.Printf("%s %s %s\n", status, th.Paint(th.Title, r.Scenario),
		th.Paint(th.Dim, fmt.Sprintf("(%d/%d steps, %s)", r.Passed, len(r.Steps), r.Duration.Round(time.Microsecond))))

	for _, st := range r.Steps {
		if st.Passed && !flagVerbose {
			continue
		}
		mark := th.Paint(th.Pass, "ok")
		if !st.Passed {
			mark = th.Paint(th.Fail, "!!")
		}
		fmt.Printf("  %s %2d %-8s %s\n", mark, st.Index, st.Op, st.Detail)
		if st.Failure != "" {
			fmt.Printf("        %s\n", th.Paint(th.Fail, st.Failure))
		}
	}

	if flagShow && r.Board != nil {
		fmt.Println()
		fmt.Print(renderBoard(r.Board, overlay{Paths: r.Paths}, th))
		fmt.Println()
	}
}

// toRecord converts a report into a history record.
func toRecord(r scenario.Report) storage.RunRecord {
	rec := storage.RunRecord{
		Scenario: r.Scenario,
		Passed:   r.Passed,
		Failed:   r.Failed,
		Duration: r.Duration,
		Steps:    make([]storage.StepRecord, 0, len(r.Steps)),
	}
	for _, st := range r.Steps {
		rec.Steps = append(rec.Steps, storage.StepRecord{
			Index:   st.Index,
			Op:      st.Op,
			Passed:  st.Passed,
			Detail:  st.Detail,
			Failure: st.Failure,
		})
	}
	return rec
}
