package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(scenario string, failed int) RunRecord {
	steps := []StepRecord{
		{Index: 1, Op: "place", Passed: true, Detail: "placed wall at (0,0)"},
		{Index: 2, Op: "path", Passed: failed == 0, Detail: "found cost=50 len=6"},
	}
	if failed > 0 {
		steps[1].Failure = "cost = 50, expected 40"
	}
	return RunRecord{
		Scenario: scenario,
		Passed:   2 - failed,
		Failed:   failed,
		Duration: 1500 * time.Microsecond,
		Steps:    steps,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieveRun(t *testing.T) {
	store := openTestStore(t)

	run := sampleRun("placement", 1)
	run.RunID = "run-1"
	if _, err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.Run("run-1")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Run() returned nil for a saved run")
	}
	if got.Scenario != "placement" || got.Passed != 1 || got.Failed != 1 {
		t.Errorf("run = %+v", got)
	}
	if got.Duration != 1500*time.Microsecond {
		t.Errorf("Duration = %v, expected 1.5ms", got.Duration)
	}
	if got.OK() {
		t.Error("run with a failed step should not be OK")
	}
	if len(got.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(got.Steps))
	}
	if got.Steps[1].Passed || got.Steps[1].Failure == "" {
		t.Errorf("step 2 = %+v, expected a recorded failure", got.Steps[1])
	}

	missing, err := store.Run("nope")
	if err != nil || missing != nil {
		t.Errorf("Run(nope) = %v, %v, expected nil, nil", missing, err)
	}
}

func TestStoreAssignsRunIDs(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := store.SaveRun(sampleRun("placement", 0)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool)
	for _, r := range runs {
		if r.RunID == "" || seen[r.RunID] {
			t.Errorf("run ID %q empty or duplicated", r.RunID)
		}
		seen[r.RunID] = true
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(sampleRun("placement", 0))
	store.SaveRun(sampleRun("walled", 0))
	store.SaveRun(sampleRun("placement", 1))

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(all))
	}
	// Newest first
	if all[0].Scenario != "placement" || all[0].Failed != 1 {
		t.Errorf("newest run = %+v", all[0])
	}

	placement, _ := store.RecentRuns("placement", 10)
	if len(placement) != 2 {
		t.Errorf("Expected 2 placement runs, got %d", len(placement))
	}

	limited, _ := store.RecentRuns("", 1)
	if len(limited) != 1 {
		t.Errorf("Expected 1 run with limit, got %d", len(limited))
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	run := sampleRun("placement", 0)
	run.RunID = "to-clear"
	store.SaveRun(run)
	store.SaveRun(sampleRun("walled", 0))

	if err := store.ClearRuns("placement"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	if runs, _ := store.RecentRuns("placement", 10); len(runs) != 0 {
		t.Errorf("Expected 0 placement runs after clear, got %d", len(runs))
	}
	if runs, _ := store.RecentRuns("walled", 10); len(runs) != 1 {
		t.Error("walled runs should not be affected by clearing placement")
	}
	if got, _ := store.Run("to-clear"); got != nil {
		t.Error("cleared run still retrievable")
	}
}

func TestStoreScenarioStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(sampleRun("placement", 0))
	store.SaveRun(sampleRun("placement", 1))
	store.SaveRun(sampleRun("walled", 0))

	stats, err := store.AllScenarioStats()
	if err != nil {
		t.Fatalf("AllScenarioStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 scenarios, got %d", len(stats))
	}

	p := stats["placement"]
	if p.Runs != 2 || p.CleanRuns != 1 {
		t.Errorf("placement stats = %+v", p)
	}
	if p.AvgDuration != 1500*time.Microsecond {
		t.Errorf("AvgDuration = %v, expected 1.5ms", p.AvgDuration)
	}
}
