package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-blockfall/internal/blockfall/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieveScores(t *testing.T) {
	store := openTestStore(t)

	for _, sc := range []struct{ score, level, lines int }{
		{100, 1, 4}, {50, 1, 2}, {200, 2, 12},
	} {
		if _, err := store.SaveScore("blockfall", sc.score, sc.level, sc.lines); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("blockfall", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores out of order: %d, %d, %d", scores[0].Score, scores[1].Score, scores[2].Score)
	}
	if scores[0].Level != 2 || scores[0].Lines != 12 {
		t.Errorf("Top entry level/lines = %d/%d, expected 2/12", scores[0].Level, scores[0].Lines)
	}

	high, err := store.HighScore("blockfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 200 {
		t.Errorf("HighScore() = %d, expected 200", high)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveScore("blockfall", i*10, 1, 0); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("blockfall", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore("blockfall", 100, 1, 0); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if err := store.ClearScores("blockfall"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, err := store.TopScores("blockfall", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("Expected no scores after clear, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 200, 300} {
		if _, err := store.SaveScore("blockfall", score, 1, 0); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	stats, err := store.GetGameStats("blockfall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 {
		t.Errorf("GamesCount = %d, expected 3", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, expected 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
}

func testRecord() core.Record {
	return core.Record{
		ID:   "test-replay-1",
		Seed: 42,
		Actions: []core.TimedInput{
			{AtMs: 100, Input: core.InputLeft},
			{AtMs: 250, Input: core.InputRotateCW},
			{AtMs: 500, Input: core.InputHardDrop},
		},
		FinalScore: 1200,
		FinalLevel: 2,
		FinalLines: 11,
		DurationMs: 800,
		CreatedAt:  time.Now(),
	}
}

func TestStoreSaveAndLoadReplay(t *testing.T) {
	store := openTestStore(t)

	rec := testRecord()
	if err := store.SaveReplay(rec); err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	loaded, err := store.LoadReplay(rec.ID)
	if err != nil {
		t.Fatalf("LoadReplay() failed: %v", err)
	}
	if loaded.Seed != rec.Seed || loaded.DurationMs != rec.DurationMs {
		t.Errorf("Loaded %+v, expected seed %d duration %v", loaded, rec.Seed, rec.DurationMs)
	}
	if len(loaded.Actions) != len(rec.Actions) {
		t.Fatalf("Loaded %d actions, expected %d", len(loaded.Actions), len(rec.Actions))
	}
	for i := range rec.Actions {
		if loaded.Actions[i] != rec.Actions[i] {
			t.Errorf("Action %d = %+v, expected %+v", i, loaded.Actions[i], rec.Actions[i])
		}
	}
}

func TestStoreReplayListing(t *testing.T) {
	store := openTestStore(t)

	for i, id := range []string{"r1", "r2", "r3"} {
		rec := testRecord()
		rec.ID = id
		rec.FinalScore = (i + 1) * 100
		rec.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		if err := store.SaveReplay(rec); err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}

	summaries, err := store.Replays(10)
	if err != nil {
		t.Fatalf("Replays() failed: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("Expected 3 replays, got %d", len(summaries))
	}
	// Newest first
	if summaries[0].ID != "r3" {
		t.Errorf("First replay = %q, expected r3", summaries[0].ID)
	}
}

func TestStoreDeleteReplay(t *testing.T) {
	store := openTestStore(t)

	rec := testRecord()
	if err := store.SaveReplay(rec); err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if err := store.DeleteReplay(rec.ID); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, err := store.LoadReplay(rec.ID); err == nil {
		t.Error("LoadReplay() succeeded for a deleted replay")
	}
}

func TestStoreRejectsMalformedReplays(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*core.Record)
		want   string
	}{
		{
			"unknown input",
			func(r *core.Record) { r.Actions[1].Input = 99 },
			"unknown input",
		},
		{
			"negative timestamp",
			func(r *core.Record) { r.Actions[0].AtMs = -5 },
			"negative timestamp",
		},
		{
			"out of order",
			func(r *core.Record) { r.Actions[2].AtMs = 50 },
			"precedes",
		},
		{
			"beyond duration",
			func(r *core.Record) { r.Actions[2].AtMs = 5000 },
			"exceeds duration",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := openTestStore(t)
			rec := testRecord()
			tc.mutate(&rec)
			if err := store.SaveReplay(rec); err != nil {
				t.Fatalf("SaveReplay() failed: %v", err)
			}
			_, err := store.LoadReplay(rec.ID)
			if err == nil {
				t.Fatal("LoadReplay() accepted a malformed action log")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
