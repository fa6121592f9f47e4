package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

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

func TestSaveRunAssignsIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run, err := store.SaveRun(ctx, Run{ScenarioID: "level1", Outcome: "won", Moves: 7, Source: SourcePlay})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if run.ID == 0 {
		t.Error("expected database ID to be set")
	}
	if _, err := uuid.Parse(run.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", run.RunID, err)
	}

	got, err := store.RunByID(ctx, run.RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("saved run not found")
	}
	if got.ScenarioID != "level1" || got.Outcome != "won" || got.Moves != 7 || got.Source != SourcePlay {
		t.Errorf("unexpected run: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed")
	}
}

func TestSaveRunDefaultsOutcome(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run, err := store.SaveRun(ctx, Run{ScenarioID: "level2", Source: SourceProgram})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if run.Outcome != "none" {
		t.Errorf("Outcome = %q, want none", run.Outcome)
	}
}

func TestSaveRunDuplicateRunID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id := uuid.NewString()
	if _, err := store.SaveRun(ctx, Run{RunID: id, ScenarioID: "a", Source: SourcePlay}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(ctx, Run{RunID: id, ScenarioID: "a", Source: SourcePlay}); err == nil {
		t.Error("expected error for duplicate run ID")
	}
}

func TestRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RunByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing run, got %+v", got)
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := range 5 {
		if _, err := store.SaveRun(ctx, Run{ScenarioID: "level1", Outcome: "lost", Moves: i, Source: SourcePlay}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(ctx, Run{ScenarioID: "level2", Outcome: "won", Source: SourceSSH}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns(ctx, "level1", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	// Same-second inserts fall back to insertion order, newest first.
	if runs[0].Moves != 4 || runs[2].Moves != 2 {
		t.Errorf("runs not newest first: %v, %v, %v", runs[0].Moves, runs[1].Moves, runs[2].Moves)
	}

	all, err := store.RecentRuns(ctx, "", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("expected 6 runs across scenarios, got %d", len(all))
	}
	if all[0].ScenarioID != "level2" {
		t.Errorf("newest run should be level2, got %s", all[0].ScenarioID)
	}
}

func TestScenarioStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	runs := []Run{
		{ScenarioID: "level3", Outcome: "won", Moves: 9},
		{ScenarioID: "level3", Outcome: "won", Moves: 4},
		{ScenarioID: "level3", Outcome: "lost", Moves: 2},
		{ScenarioID: "level3", Outcome: "none", Moves: 1},
		{ScenarioID: "level4", Outcome: "lost", Moves: 3},
	}
	for _, r := range runs {
		r.Source = SourceProgram
		if _, err := store.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.GetScenarioStats(ctx, "level3")
	if err != nil {
		t.Fatalf("GetScenarioStats() failed: %v", err)
	}
	if stats.Runs != 4 || stats.Wins != 2 || stats.Losses != 1 || stats.BestMoves != 4 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if time.Since(stats.LastPlayed) > 24*time.Hour {
		t.Errorf("LastPlayed = %v", stats.LastPlayed)
	}

	empty, err := store.GetScenarioStats(ctx, "never")
	if err != nil {
		t.Fatalf("GetScenarioStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.BestMoves != 0 {
		t.Errorf("unplayed scenario should have zero stats: %+v", empty)
	}

	all, err := store.GetAllScenarioStats(ctx)
	if err != nil {
		t.Fatalf("GetAllScenarioStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(all))
	}
	if all["level4"].BestMoves != 0 || all["level4"].Losses != 1 {
		t.Errorf("unexpected level4 stats: %+v", all["level4"])
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "a", "b"} {
		if _, err := store.SaveRun(ctx, Run{ScenarioID: id, Source: SourcePlay}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	if err := store.ClearRuns(ctx, "a"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ := store.RecentRuns(ctx, "", 10)
	if len(runs) != 1 || runs[0].ScenarioID != "b" {
		t.Errorf("only b should remain, got %v", runs)
	}

	if err := store.ClearRuns(ctx, ""); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ = store.RecentRuns(ctx, "", 10)
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestParseTime(t *testing.T) {
	ref := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"time", ref, ref},
		{"sqlite string", "2026-01-02 03:04:05", ref},
		{"rfc3339", "2026-01-02T03:04:05Z", ref},
		{"garbage", "soon", time.Time{}},
		{"nil", nil, time.Time{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseTime(tc.in); !got.Equal(tc.want) {
				t.Errorf("parseTime(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
