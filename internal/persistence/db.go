// Package persistence stores complete game saves in SQLite. A save is the
// game's state snapshot spread over three tables: one games row with the
// serialized map, one civs row per seat, and the recent event log. Saves are
// full replacements keyed by game ID, so a database can hold many games.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/corvidae/stellar-age/internal/civ"
	"github.com/corvidae/stellar-age/internal/rules"
	"github.com/corvidae/stellar-age/internal/sim"
	"github.com/corvidae/stellar-age/internal/world"
)

// DB wraps a SQLite connection for game save storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		round INTEGER NOT NULL,
		map_json TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS civs (
		game_id TEXT NOT NULL,
		seat INTEGER NOT NULL,
		state_json TEXT NOT NULL,
		PRIMARY KEY (game_id, seat)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		civ INTEGER NOT NULL,
		kind TEXT NOT NULL,
		message TEXT NOT NULL,
		meta_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_civs_game ON civs(game_id);
	CREATE INDEX IF NOT EXISTS idx_events_game ON events(game_id, round);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveGame writes a complete save of the game: its snapshot plus the recent
// event log, replacing any previous save under the same game ID.
func (db *DB) SaveGame(g *sim.Game) error {
	state := g.Snapshot()
	events := g.Events(0)
	slog.Info("saving game", "game", state.ID, "round", state.Round, "civs", len(state.Civs))

	mapJSON, err := json.Marshal(state.Map)
	if err != nil {
		return fmt.Errorf("encode map: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM games WHERE id = ?", state.ID); err != nil {
		return fmt.Errorf("clear games: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM civs WHERE game_id = ?", state.ID); err != nil {
		return fmt.Errorf("clear civs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM events WHERE game_id = ?", state.ID); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO games (id, round, map_json, saved_at) VALUES (?, ?, ?, ?)",
		state.ID, state.Round, string(mapJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}

	stmt, err := tx.Preparex("INSERT INTO civs (game_id, seat, state_json) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, cs := range state.Civs {
		blob, _ := json.Marshal(cs)
		if _, err := stmt.Exec(state.ID, i+1, string(blob)); err != nil {
			return fmt.Errorf("insert civ %d: %w", i+1, err)
		}
	}

	evStmt, err := tx.Preparex(`INSERT INTO events
		(game_id, round, civ, kind, message, meta_json)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer evStmt.Close()

	for _, e := range events {
		meta, _ := json.Marshal(e.Meta)
		if _, err := evStmt.Exec(state.ID, e.Round, int(e.Civ), string(e.Kind), e.Message, string(meta)); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("game saved", "game", state.ID, "events", len(events))
	return nil
}

// LoadGame reads a save and rebuilds a runnable game from it. Runtime
// options (tuning, scheduled wars) come from opts, not the save.
func (db *DB) LoadGame(id string, cat *rules.Catalog, opts sim.Options) (*sim.Game, error) {
	var row struct {
		ID      string `db:"id"`
		Round   int    `db:"round"`
		MapJSON string `db:"map_json"`
		SavedAt string `db:"saved_at"`
	}
	if err := db.conn.Get(&row, "SELECT id, round, map_json, saved_at FROM games WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("load game %q: %w", id, err)
	}

	m, err := world.DecodeMap([]byte(row.MapJSON))
	if err != nil {
		return nil, fmt.Errorf("load game %q: decode map: %w", id, err)
	}

	var civRows []struct {
		Seat      int    `db:"seat"`
		StateJSON string `db:"state_json"`
	}
	if err := db.conn.Select(&civRows, "SELECT seat, state_json FROM civs WHERE game_id = ? ORDER BY seat", id); err != nil {
		return nil, fmt.Errorf("load game %q: civs: %w", id, err)
	}

	state := sim.GameState{ID: row.ID, Round: row.Round, Map: m}
	for _, cr := range civRows {
		var cs sim.CivState
		if err := json.Unmarshal([]byte(cr.StateJSON), &cs); err != nil {
			return nil, fmt.Errorf("load game %q: seat %d: %w", id, cr.Seat, err)
		}
		state.Civs = append(state.Civs, cs)
	}

	g, err := sim.RestoreGame(cat, state, opts)
	if err != nil {
		return nil, fmt.Errorf("load game %q: %w", id, err)
	}
	slog.Info("game loaded", "game", id, "round", row.Round, "civs", len(state.Civs), "saved_at", row.SavedAt)
	return g, nil
}

// SaveInfo summarizes one stored save.
type SaveInfo struct {
	ID      string `db:"id" json:"id"`
	Round   int    `db:"round" json:"round"`
	Civs    int    `db:"civs" json:"civs"`
	SavedAt string `db:"saved_at" json:"saved_at"`
}

// ListGames returns every stored save, most recently written first. Order
// follows insertion, not the saved_at text, so same-second saves stay stable.
func (db *DB) ListGames() ([]SaveInfo, error) {
	var out []SaveInfo
	err := db.conn.Select(&out, `
		SELECT g.id, g.round, COUNT(c.seat) AS civs, g.saved_at
		FROM games g LEFT JOIN civs c ON c.game_id = g.id
		GROUP BY g.id ORDER BY g.rowid DESC`)
	return out, err
}

// LatestGameID returns the ID of the most recently written save.
func (db *DB) LatestGameID() (string, error) {
	var id string
	err := db.conn.Get(&id, "SELECT id FROM games ORDER BY rowid DESC LIMIT 1")
	return id, err
}

// RecentEvents returns up to limit stored events for a game, newest first.
func (db *DB) RecentEvents(gameID string, limit int) ([]civ.Event, error) {
	var rows []struct {
		Round    int    `db:"round"`
		Civ      int    `db:"civ"`
		Kind     string `db:"kind"`
		Message  string `db:"message"`
		MetaJSON string `db:"meta_json"`
	}
	err := db.conn.Select(&rows, `
		SELECT round, civ, kind, message, meta_json FROM events
		WHERE game_id = ? ORDER BY id DESC LIMIT ?`, gameID, limit)
	if err != nil {
		return nil, err
	}

	events := make([]civ.Event, 0, len(rows))
	for _, r := range rows {
		e := civ.Event{
			Round:   r.Round,
			Civ:     civ.CivID(r.Civ),
			Kind:    civ.EventKind(r.Kind),
			Message: r.Message,
		}
		if r.MetaJSON != "" && r.MetaJSON != "null" {
			json.Unmarshal([]byte(r.MetaJSON), &e.Meta)
		}
		events = append(events, e)
	}
	return events, nil
}

// SaveMeta stores a key-value pair in save metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}
