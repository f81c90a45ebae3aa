package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieveRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{
		GameID:     "clayrun",
		Player:     "ana",
		Character:  3,
		TotalScore: 285,
		Rounds:     []int{80, 95, 110},
		Victory:    true,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.SetBranch(id, "cafe"); err != nil {
		t.Fatalf("SetBranch() failed: %v", err)
	}

	runs, err := store.TopRuns("clayrun", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	r := runs[0]
	if r.ID != id || r.Player != "ana" || r.Character != 3 || r.TotalScore != 285 || !r.Victory || r.Branch != "cafe" {
		t.Errorf("Unexpected run: %+v", r)
	}
	if len(r.Rounds) != 3 || r.Rounds[0] != 80 || r.Rounds[1] != 95 || r.Rounds[2] != 110 {
		t.Errorf("Rounds = %v, want [80 95 110]", r.Rounds)
	}
}

func TestStoreTopRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		total := (i + 1) * 50
		if _, err := store.SaveRun(RunRecord{GameID: "clayrun", TotalScore: total, Rounds: []int{total}}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	store.SaveRun(RunRecord{GameID: "clayrun_classic", TotalScore: 999})

	runs, err := store.TopRuns("clayrun", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].TotalScore != 250 || runs[1].TotalScore != 200 || runs[2].TotalScore != 150 {
		t.Errorf("Runs not in expected order: %+v", runs)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("clayrun")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveRun(RunRecord{GameID: "clayrun", TotalScore: 100})
	store.SaveRun(RunRecord{GameID: "clayrun", TotalScore: 300})
	store.SaveRun(RunRecord{GameID: "clayrun", TotalScore: 200})

	high, err = store.HighScore("clayrun")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	id, _ := store.SaveRun(RunRecord{GameID: "clayrun", TotalScore: 100, Rounds: []int{30, 30, 40}})
	store.SaveRun(RunRecord{GameID: "clayrun_classic", TotalScore: 300, Rounds: []int{300}})

	if err := store.ClearRuns("clayrun"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("clayrun", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	rounds, _ := store.RunRounds(id)
	if len(rounds) != 0 {
		t.Errorf("Rounds of a cleared run survived: %v", rounds)
	}

	classic, _ := store.TopRuns("clayrun_classic", 10)
	if len(classic) != 1 {
		t.Error("Classic runs should not be affected by clearing clayrun")
	}
}

func TestStoreSetBranchUnknownRun(t *testing.T) {
	store := openTestStore(t)

	if err := store.SetBranch(42, "tamal"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetBranch() error = %v, want ErrNotFound", err)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{GameID: "clayrun", TotalScore: 180})
	store.SaveRun(RunRecord{GameID: "clayrun", TotalScore: 300, Victory: true})
	store.SaveRun(RunRecord{GameID: "clayrun_classic", TotalScore: 90})

	stats, err := store.GetGameStats("clayrun")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.RunsCount != 2 || stats.Victories != 1 || stats.HighScore != 300 || stats.TotalScore != 480 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 240 {
		t.Errorf("AvgScore = %v, want 240", stats.AvgScore)
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.RunsCount != 0 || empty.HighScore != 0 {
		t.Errorf("Unexpected empty stats: %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["clayrun_classic"].HighScore != 90 {
		t.Errorf("Unexpected all-games stats: %+v", all)
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
