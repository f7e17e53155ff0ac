package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/t2048/internal/leaderboard"
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

// repositories returns a fresh SQLite store and a fresh memory store so the
// shared behaviour is checked against both.
func repositories(t *testing.T) map[string]Repository {
	return map[string]Repository{
		"sqlite": openTestStore(t),
		"memory": NewMemory(),
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRecords(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SaveBest(4096); err != nil {
		t.Fatalf("SaveBest() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	best, err := store.LoadBest()
	if err != nil {
		t.Fatalf("LoadBest() failed: %v", err)
	}
	if best != 4096 {
		t.Errorf("best = %d, want 4096", best)
	}
}

func TestRecordsMissing(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := repo.LoadGame(); !errors.Is(err, ErrNotFound) {
				t.Errorf("LoadGame() error = %v, want ErrNotFound", err)
			}
			if _, err := repo.LoadBest(); !errors.Is(err, ErrNotFound) {
				t.Errorf("LoadBest() error = %v, want ErrNotFound", err)
			}
			if _, err := repo.LoadLeaderboard(); !errors.Is(err, ErrNotFound) {
				t.Errorf("LoadLeaderboard() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestGameRecordRoundTrip(t *testing.T) {
	prevScore := 12
	rec := GameRecord{
		Grid: [][]int{
			{2, 2, 0, 0},
			{0, 4, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 8},
		},
		Score:    16,
		GameOver: false,
		PreviousGrid: [][]int{
			{2, 0, 0, 2},
			{0, 4, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 8},
		},
		PreviousScore: &prevScore,
	}

	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			if err := repo.SaveGame(rec); err != nil {
				t.Fatalf("SaveGame() failed: %v", err)
			}
			got, err := repo.LoadGame()
			if err != nil {
				t.Fatalf("LoadGame() failed: %v", err)
			}
			if diff := cmp.Diff(rec, got); diff != "" {
				t.Errorf("record mismatch (-want +got):\n%s", diff)
			}

			// Overwrite drops the undo snapshot.
			rec2 := GameRecord{Grid: rec.Grid, Score: 20, GameOver: true}
			if err := repo.SaveGame(rec2); err != nil {
				t.Fatalf("SaveGame() failed: %v", err)
			}
			got, err = repo.LoadGame()
			if err != nil {
				t.Fatalf("LoadGame() failed: %v", err)
			}
			if got.PreviousGrid != nil || got.PreviousScore != nil || !got.GameOver {
				t.Errorf("overwritten record = %+v", got)
			}
		})
	}
}

func TestGameRecordWireFormat(t *testing.T) {
	mem := NewMemory()
	rec := GameRecord{Grid: [][]int{{2, 0}, {0, 0}}, Score: 0}
	if err := mem.SaveGame(rec); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	raw, ok := mem.Raw(KeyState)
	if !ok {
		t.Fatal("state not stored")
	}
	want := `{"grid":[[2,0],[0,0]],"score":0,"gameOver":false,"previousGrid":null,"previousScore":null}`
	if string(raw) != want {
		t.Errorf("encoded state = %s\nwant %s", raw, want)
	}
}

func TestMalformedRecord(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)`, KeyState, "{not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if _, err := store.LoadGame(); !errors.Is(err, ErrMalformed) {
		t.Errorf("sqlite LoadGame() error = %v, want ErrMalformed", err)
	}

	mem := NewMemory()
	mem.SetRaw(KeyBest, []byte(`"lots"`))
	if _, err := mem.LoadBest(); !errors.Is(err, ErrMalformed) {
		t.Errorf("memory LoadBest() error = %v, want ErrMalformed", err)
	}
}

func TestLeaderboardRoundTrip(t *testing.T) {
	entries := []leaderboard.Entry{
		{Name: "ann", Score: 2048, Date: "01.02.2024"},
		{Name: "bo", Score: 1024, Date: "03.02.2024"},
	}

	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			if err := repo.SaveLeaderboard(entries); err != nil {
				t.Fatalf("SaveLeaderboard() failed: %v", err)
			}
			got, err := repo.LoadLeaderboard()
			if err != nil {
				t.Fatalf("LoadLeaderboard() failed: %v", err)
			}
			if diff := cmp.Diff(entries, got); diff != "" {
				t.Errorf("leaderboard mismatch (-want +got):\n%s", diff)
			}

			if err := repo.SaveLeaderboard(nil); err != nil {
				t.Fatalf("SaveLeaderboard(nil) failed: %v", err)
			}
			got, err = repo.LoadLeaderboard()
			if err != nil {
				t.Fatalf("LoadLeaderboard() failed: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("expected empty leaderboard, got %v", got)
			}
		})
	}
}

func TestGameHistory(t *testing.T) {
	base := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			results := []GameResult{
				{GameID: "g1", Score: 100, MaxTile: 16, Moves: 20, FinishedAt: base},
				{GameID: "g2", Score: 300, MaxTile: 64, Moves: 50, FinishedAt: base.Add(time.Hour)},
				{GameID: "g3", Score: 200, MaxTile: 32, Moves: 40, FinishedAt: base.Add(2 * time.Hour)},
			}
			for _, r := range results {
				id, err := repo.RecordGame(r)
				if err != nil {
					t.Fatalf("RecordGame() failed: %v", err)
				}
				if id == 0 {
					t.Fatalf("RecordGame(%s) returned id 0", r.GameID)
				}
			}

			// Duplicate game IDs are ignored.
			id, err := repo.RecordGame(GameResult{GameID: "g1", Score: 999})
			if err != nil {
				t.Fatalf("RecordGame() duplicate failed: %v", err)
			}
			if id != 0 {
				t.Errorf("duplicate RecordGame id = %d, want 0", id)
			}

			recent, err := repo.RecentGames(2)
			if err != nil {
				t.Fatalf("RecentGames() failed: %v", err)
			}
			if len(recent) != 2 || recent[0].GameID != "g3" || recent[1].GameID != "g2" {
				t.Errorf("RecentGames(2) = %+v, want g3, g2", recent)
			}
			if !recent[0].FinishedAt.Equal(base.Add(2 * time.Hour)) {
				t.Errorf("FinishedAt = %v, want %v", recent[0].FinishedAt, base.Add(2*time.Hour))
			}

			stats, err := repo.Stats()
			if err != nil {
				t.Fatalf("Stats() failed: %v", err)
			}
			if stats.GamesCount != 3 {
				t.Errorf("GamesCount = %d, want 3", stats.GamesCount)
			}
			if stats.HighScore != 300 {
				t.Errorf("HighScore = %d, want 300", stats.HighScore)
			}
			if stats.AvgScore != 200 {
				t.Errorf("AvgScore = %f, want 200", stats.AvgScore)
			}
			if stats.TotalScore != 600 {
				t.Errorf("TotalScore = %d, want 600", stats.TotalScore)
			}
			if stats.BestTile != 64 {
				t.Errorf("BestTile = %d, want 64", stats.BestTile)
			}
			if !stats.LastPlayed.Equal(base.Add(2 * time.Hour)) {
				t.Errorf("LastPlayed = %v, want %v", stats.LastPlayed, base.Add(2*time.Hour))
			}
		})
	}
}

func TestStatsEmpty(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			stats, err := repo.Stats()
			if err != nil {
				t.Fatalf("Stats() failed: %v", err)
			}
			if stats.GamesCount != 0 || stats.HighScore != 0 || !stats.LastPlayed.IsZero() {
				t.Errorf("empty stats = %+v", stats)
			}
		})
	}
}

func TestReset(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			repo.SaveBest(128)
			repo.SaveGame(GameRecord{Grid: [][]int{{2}}})
			repo.RecordGame(GameResult{GameID: "g", Score: 128})

			if err := repo.Reset(false); err != nil {
				t.Fatalf("Reset(false) failed: %v", err)
			}
			if _, err := repo.LoadBest(); !errors.Is(err, ErrNotFound) {
				t.Errorf("best survived reset: %v", err)
			}
			if stats, _ := repo.Stats(); stats.GamesCount != 1 {
				t.Errorf("history cleared without --all: %+v", stats)
			}

			if err := repo.Reset(true); err != nil {
				t.Fatalf("Reset(true) failed: %v", err)
			}
			if stats, _ := repo.Stats(); stats.GamesCount != 0 {
				t.Errorf("history survived full reset: %+v", stats)
			}
		})
	}
}
