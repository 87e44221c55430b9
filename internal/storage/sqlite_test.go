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

func TestStoreOpenCreatesNestedFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore(ScoreEntry{GameID: "aether", Player: "local", Score: score, Level: 3, Wave: 1}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore(ScoreEntry{GameID: "aether_classic", Score: 500}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("aether", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}
	if scores[0].Player != "local" || scores[0].Level != 3 {
		t.Errorf("Run details not stored: %+v", scores[0])
	}

	limited, _ := store.TopScores("aether", 2)
	if len(limited) != 2 {
		t.Errorf("Expected 2 scores with limit, got %d", len(limited))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("aether")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore(ScoreEntry{GameID: "aether", Score: 300})
	store.SaveScore(ScoreEntry{GameID: "aether", Score: 8150})
	store.SaveScore(ScoreEntry{GameID: "aether_classic", Score: 10})

	if high, _ = store.HighScore("aether"); high != 8150 {
		t.Errorf("Expected high score of 8150, got %d", high)
	}

	if err := store.ClearScores("aether"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("aether", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("aether_classic", 10); len(scores) != 1 {
		t.Error("Other games should not be affected by clearing")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{GameID: "aether", Score: 100, Wave: 2})
	store.SaveScore(ScoreEntry{GameID: "aether", Score: 300, Wave: 4})

	stats, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	gs, ok := stats["aether"]
	if !ok {
		t.Fatal("Expected stats for aether")
	}
	if gs.GamesCount != 2 || gs.HighScore != 300 || gs.BestWave != 4 {
		t.Errorf("Unexpected stats: %+v", gs)
	}
	if gs.AvgScore != 200 {
		t.Errorf("AvgScore = %f, expected 200", gs.AvgScore)
	}
}

func TestStoreKV(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("aether/slot/1"); err != nil || ok {
		t.Fatalf("Get() on empty store = ok %v, err %v", ok, err)
	}

	if err := store.Set("aether/slot/1", `{"v":1}`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("aether/slot/1", `{"v":2}`); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	v, ok, err := store.Get("aether/slot/1")
	if err != nil || !ok || v != `{"v":2}` {
		t.Errorf("Get() = %q, %v, %v; expected overwritten value", v, ok, err)
	}

	if err := store.Delete("aether/slot/1"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := store.Get("aether/slot/1"); ok {
		t.Error("Key should be gone after Delete()")
	}
	if err := store.Delete("aether/slot/1"); err != nil {
		t.Errorf("Deleting an absent key should succeed, got %v", err)
	}
}

func TestStoreKVPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "saves.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.Set("aether/continue_token", "1")
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if v, ok, _ := store.Get("aether/continue_token"); !ok || v != "1" {
		t.Errorf("Expected token to survive reopen, got %q (ok=%v)", v, ok)
	}
}
