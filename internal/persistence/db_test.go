package persistence

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/corvidae/stellar-age/internal/rules"
	"github.com/corvidae/stellar-age/internal/sim"
	"github.com/corvidae/stellar-age/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func startGame(t *testing.T, cat *rules.Catalog) *sim.Game {
	t.Helper()
	m := world.Generate(world.SmallGenConfig())
	g, err := sim.NewGame(cat, m, sim.Options{Civs: []string{"helio-compact", "void-syndicate"}})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	cat := rules.Baseline()
	g := startGame(t, cat)
	for i := 0; i < 8; i++ {
		g.RunRound()
	}

	if err := db.SaveGame(g); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	loaded, err := db.LoadGame(g.ID(), cat, sim.Options{})
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}

	if loaded.Round() != 8 {
		t.Errorf("loaded Round() = %d, want 8", loaded.Round())
	}
	want, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := json.Marshal(loaded.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(want, got) {
		t.Error("loaded game state differs from the saved game")
	}
}

func TestLoadGameUnknownID(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.LoadGame("no-such-save", rules.Baseline(), sim.Options{}); err == nil {
		t.Fatal("LoadGame invented a save")
	}
}

func TestSaveReplacesPrevious(t *testing.T) {
	db := openTestDB(t)
	cat := rules.Baseline()
	g := startGame(t, cat)

	g.RunRound()
	if err := db.SaveGame(g); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	g.RunRound()
	g.RunRound()
	if err := db.SaveGame(g); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	saves, err := db.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(saves) != 1 {
		t.Fatalf("ListGames() = %d saves after re-saving one game, want 1", len(saves))
	}
	if saves[0].ID != g.ID() || saves[0].Round != 3 || saves[0].Civs != 2 {
		t.Errorf("save info = %+v, want round 3 with 2 civs", saves[0])
	}
}

func TestListGamesAndLatest(t *testing.T) {
	db := openTestDB(t)
	cat := rules.Baseline()

	first := startGame(t, cat)
	first.RunRound()
	if err := db.SaveGame(first); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	second := startGame(t, cat)
	second.RunRound()
	if err := db.SaveGame(second); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	saves, err := db.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(saves) != 2 {
		t.Fatalf("ListGames() = %d saves, want 2", len(saves))
	}
	if saves[0].ID != second.ID() {
		t.Errorf("most recent save is %q, want %q", saves[0].ID, second.ID())
	}

	latest, err := db.LatestGameID()
	if err != nil {
		t.Fatalf("LatestGameID: %v", err)
	}
	if latest != second.ID() {
		t.Errorf("LatestGameID() = %q, want %q", latest, second.ID())
	}

	// Re-saving the first game makes it the latest again.
	first.RunRound()
	if err := db.SaveGame(first); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	latest, err = db.LatestGameID()
	if err != nil {
		t.Fatalf("LatestGameID: %v", err)
	}
	if latest != first.ID() {
		t.Errorf("LatestGameID() = %q after re-save, want %q", latest, first.ID())
	}
}

func TestRecentEventsStored(t *testing.T) {
	db := openTestDB(t)
	cat := rules.Baseline()
	g := startGame(t, cat)
	for i := 0; i < 3; i++ {
		g.RunRound()
	}
	if err := db.SaveGame(g); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	events, err := db.RecentEvents(g.ID(), 5)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(events) != 5 {
		t.Fatalf("RecentEvents returned %d events, want 5", len(events))
	}
	for _, e := range events {
		if e.Kind == "" || e.Message == "" {
			t.Errorf("malformed stored event %+v", e)
		}
	}
	// Newest first.
	if events[0].Round < events[len(events)-1].Round {
		t.Errorf("events out of order: first round %d, last round %d",
			events[0].Round, events[len(events)-1].Round)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveMeta("last_game", "abc"); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}
	got, err := db.GetMeta("last_game")
	if err != nil || got != "abc" {
		t.Fatalf("GetMeta = %q, %v; want abc", got, err)
	}

	if err := db.SaveMeta("last_game", "def"); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}
	got, err = db.GetMeta("last_game")
	if err != nil || got != "def" {
		t.Fatalf("GetMeta = %q, %v after overwrite; want def", got, err)
	}

	if _, err := db.GetMeta("missing"); err == nil {
		t.Error("GetMeta invented a value for a missing key")
	}
}
