package storage

import (
	"os"
	"path/filepath"
	"testing"

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

func TestStoreOpenCreatesNestedDirs(t *testing.T) {
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

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("candy", 420); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("candy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 420 {
		t.Errorf("high score after reopen = %d, want 420", high)
	}
}

func TestStoreSaveAndTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 500, 300} {
		id, err := store.SaveScore("candy", s)
		if err != nil {
			t.Fatalf("SaveScore(%d) failed: %v", s, err)
		}
		if id <= 0 {
			t.Errorf("SaveScore(%d) returned id %d", s, id)
		}
	}
	store.SaveScore("candy_endless", 9000) //nolint:errcheck

	scores, err := store.TopScores("candy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	want := []int{500, 300, 100}
	if len(scores) != len(want) {
		t.Fatalf("got %d scores, want %d", len(scores), len(want))
	}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].GameID != "candy" {
			t.Errorf("scores[%d].GameID = %q", i, scores[i].GameID)
		}
		if scores[i].CreatedAt.IsZero() {
			t.Errorf("scores[%d].CreatedAt not parsed", i)
		}
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	for i := range 5 {
		store.SaveScore("candy", (i+1)*100) //nolint:errcheck
	}

	tests := []struct {
		limit int
		want  int
	}{
		{limit: 3, want: 3},
		{limit: 10, want: 5},
		{limit: 0, want: 5}, // falls back to default of 10
	}
	for _, tt := range tests {
		scores, err := store.TopScores("candy", tt.limit)
		if err != nil {
			t.Fatalf("TopScores(%d) failed: %v", tt.limit, err)
		}
		if len(scores) != tt.want {
			t.Errorf("TopScores(%d) returned %d, want %d", tt.limit, len(scores), tt.want)
		}
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("candy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("empty high score = %d, want 0", high)
	}

	store.SaveScore("candy", 100) //nolint:errcheck
	store.SaveScore("candy", 300) //nolint:errcheck
	store.SaveScore("candy", 200) //nolint:errcheck

	high, err = store.HighScore("candy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("high score = %d, want 300", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("candy", 100)                                               //nolint:errcheck
	store.SaveScore("candy_endless", 300)                                       //nolint:errcheck
	store.SaveSession(SessionRecord{GameID: "candy", EndReason: "timeout"})      //nolint:errcheck
	store.SaveSession(SessionRecord{GameID: "candy_endless", EndReason: "quit"}) //nolint:errcheck

	if err := store.ClearScores("candy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("candy", 10); len(scores) != 0 {
		t.Errorf("candy scores after clear = %d, want 0", len(scores))
	}
	if sessions, _ := store.RecentSessions("candy", 10); len(sessions) != 0 {
		t.Errorf("candy sessions after clear = %d, want 0", len(sessions))
	}
	if scores, _ := store.TopScores("candy_endless", 10); len(scores) != 1 {
		t.Error("endless scores should not be affected")
	}
	if sessions, _ := store.RecentSessions("candy_endless", 10); len(sessions) != 1 {
		t.Error("endless sessions should not be affected")
	}
}

func TestStoreSaveSessionAssignsUUID(t *testing.T) {
	store := openTestStore(t)

	rec := SessionRecord{
		GameID:    "candy",
		Score:     2460,
		Swaps:     17,
		BestChain: 4,
		Specials:  3,
		Shuffles:  1,
		EndReason: "timeout",
		Duration:  60,
	}
	id, err := store.SaveSession(rec)
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("session id %q is not a UUID: %v", id, err)
	}

	got, err := store.SessionByID(id)
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("SessionByID() returned nil")
	}
	rec.ID = got.ID
	rec.SessionID = id
	rec.CreatedAt = got.CreatedAt
	if *got != rec {
		t.Errorf("SessionByID() = %+v, want %+v", *got, rec)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}
}

func TestStoreSaveSessionExplicitID(t *testing.T) {
	store := openTestStore(t)

	want := uuid.NewString()
	id, err := store.SaveSession(SessionRecord{SessionID: want, GameID: "candy", EndReason: "quit"})
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if id != want {
		t.Errorf("SaveSession() id = %q, want %q", id, want)
	}

	if _, err := store.SaveSession(SessionRecord{SessionID: want, GameID: "candy", EndReason: "quit"}); err == nil {
		t.Error("duplicate session id should fail")
	}
	if _, err := store.SaveSession(SessionRecord{SessionID: "not-a-uuid", GameID: "candy"}); err == nil {
		t.Error("malformed session id should fail")
	}
}

func TestStoreSessionByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.SessionByID(uuid.NewString())
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("SessionByID() = %+v, want nil", got)
	}
}

func TestStoreRecentSessions(t *testing.T) {
	store := openTestStore(t)

	for i := range 4 {
		store.SaveSession(SessionRecord{GameID: "candy", Score: i, EndReason: "timeout"}) //nolint:errcheck
	}
	store.SaveSession(SessionRecord{GameID: "candy_endless", Score: 99, EndReason: "quit"}) //nolint:errcheck

	tests := []struct {
		name   string
		gameID string
		limit  int
		want   []int
	}{
		{name: "newest first", gameID: "candy", limit: 10, want: []int{3, 2, 1, 0}},
		{name: "limited", gameID: "candy", limit: 2, want: []int{3, 2}},
		{name: "other game", gameID: "candy_endless", limit: 10, want: []int{99}},
		{name: "all games", gameID: "", limit: 10, want: []int{99, 3, 2, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.RecentSessions(tt.gameID, tt.limit)
			if err != nil {
				t.Fatalf("RecentSessions() failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d sessions, want %d", len(got), len(tt.want))
			}
			for i, w := range tt.want {
				if got[i].Score != w {
					t.Errorf("sessions[%d].Score = %d, want %d", i, got[i].Score, w)
				}
			}
		})
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("candy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.HighScore != 0 || stats.BestChain != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("candy", 100) //nolint:errcheck
	store.SaveScore("candy", 300) //nolint:errcheck
	store.SaveSession(SessionRecord{GameID: "candy", BestChain: 2, EndReason: "timeout"}) //nolint:errcheck
	store.SaveSession(SessionRecord{GameID: "candy", BestChain: 5, EndReason: "timeout"}) //nolint:errcheck

	stats, err = store.GetGameStats("candy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.TotalScore != 400 {
		t.Errorf("TotalScore = %d, want 400", stats.TotalScore)
	}
	if stats.BestChain != 5 {
		t.Errorf("BestChain = %d, want 5", stats.BestChain)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}
}

func TestStoreAllGamesStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("candy", 100)         //nolint:errcheck
	store.SaveScore("candy", 200)         //nolint:errcheck
	store.SaveScore("candy_endless", 900) //nolint:errcheck

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got stats for %d games, want 2", len(all))
	}
	if got := all["candy"]; got == nil || got.GamesCount != 2 || got.HighScore != 200 {
		t.Errorf("candy stats = %+v", got)
	}
	if got := all["candy_endless"]; got == nil || got.TotalScore != 900 {
		t.Errorf("candy_endless stats = %+v", got)
	}
}
