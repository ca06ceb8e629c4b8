package storage

import (
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []ScoreEntry{
		{Player: "ana", Score: 10, Ticks: 900},
		{Player: "ana", Score: 2.5, Ticks: 300},
		{Player: "bo", Score: 17.5, Ticks: 1500, Mode: ModeSSH},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending, fractions preserved
	expected := []float64{17.5, 10, 2.5}
	for i, want := range expected {
		if scores[i].Score != want {
			t.Errorf("scores[%d] = %g, expected %g", i, scores[i].Score, want)
		}
	}
	if scores[0].Player != "bo" || scores[0].Mode != ModeSSH || scores[0].Ticks != 1500 {
		t.Errorf("top entry fields not round-tripped: %+v", scores[0])
	}
	if scores[1].Mode != ModeTerminal {
		t.Errorf("empty mode should default to %q, got %q", ModeTerminal, scores[1].Mode)
	}

	ana, err := store.PlayerScores("ana", 10)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(ana) != 2 {
		t.Errorf("Expected 2 scores for ana, got %d", len(ana))
	}
}

func TestStoreDefaultPlayer(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore(ScoreEntry{Score: 1}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, _ := store.PlayerScores(DefaultPlayer, 10)
	if len(scores) != 1 {
		t.Errorf("unnamed run should be stored as %q", DefaultPlayer)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore(ScoreEntry{Player: "test", Score: float64(i+1) * 0.5})
	}

	// Request only top 3
	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	if scores[0].Score != 2.5 || scores[1].Score != 2 || scores[2].Score != 1.5 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10
	all, _ := store.TopScores(0)
	if len(all) != 5 {
		t.Errorf("Expected 5 scores with default limit, got %d", len(all))
	}
}

func TestStoreTiesKeepInsertionOrder(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Player: "first", Score: 3})
	store.SaveScore(ScoreEntry{Player: "second", Score: 3})

	scores, _ := store.TopScores(10)
	if len(scores) != 2 || scores[0].Player != "first" {
		t.Errorf("earlier run should rank first on a tie, got %+v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty store, got %g", high)
	}

	store.SaveScore(ScoreEntry{Score: 4})
	store.SaveScore(ScoreEntry{Score: 12.5})
	store.SaveScore(ScoreEntry{Score: 7})

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 12.5 {
		t.Errorf("Expected high score of 12.5, got %g", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Player: "ana", Score: 1})
	store.SaveScore(ScoreEntry{Player: "ana", Score: 2})
	store.SaveScore(ScoreEntry{Player: "bo", Score: 3})

	if err := store.ClearScores("ana"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.PlayerScores("ana", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores for ana after clear, got %d", len(scores))
	}
	if scores, _ := store.PlayerScores("bo", 10); len(scores) != 1 {
		t.Error("bo's scores should not be affected by clearing ana")
	}

	if err := store.ClearScores(""); err != nil {
		t.Fatalf("ClearScores(\"\") failed: %v", err)
	}
	if scores, _ := store.TopScores(10); len(scores) != 0 {
		t.Errorf("clearing with no player should remove every run, %d left", len(scores))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Player: "ana", Score: 2, Ticks: 100})
	store.SaveScore(ScoreEntry{Player: "ana", Score: 5, Ticks: 250})
	store.SaveScore(ScoreEntry{Player: "bo", Score: 1, Ticks: 40})

	stats, err := store.Stats("ana")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.HighScore != 5 || stats.AvgScore != 3.5 || stats.TotalTicks != 350 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.Stats("nobody")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unknown player should have zero stats, got %+v", empty)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all["bo"].Runs != 1 {
		t.Errorf("unexpected AllStats result: %v", all)
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

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
