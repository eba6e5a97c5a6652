package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/corvidae/stellar-age/internal/civ"
	"github.com/corvidae/stellar-age/internal/persistence"
	"github.com/corvidae/stellar-age/internal/rules"
	"github.com/corvidae/stellar-age/internal/sim"
	"github.com/corvidae/stellar-age/internal/world"
)

func newTestServer(t *testing.T) (*Server, *sim.Game) {
	t.Helper()
	cat := rules.Baseline()
	m := world.Generate(world.SmallGenConfig())
	g, err := sim.NewGame(cat, m, sim.Options{Civs: []string{"helio-compact", "void-syndicate"}})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	for i := 0; i < 3; i++ {
		g.RunRound()
	}
	s := &Server{
		Game:     g,
		Loop:     sim.NewLoop(g, time.Second, 0),
		AdminKey: "hunter2",
	}
	return s, g
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(into); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestStatusEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/v1/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		ID    string           `json:"id"`
		Round int              `json:"round"`
		Tiles int              `json:"tiles"`
		Civs  []sim.CivSummary `json:"civs"`
		Speed float64          `json:"speed"`
	}
	decode(t, rec, &body)

	if body.ID == "" || body.Round != 3 {
		t.Errorf("id %q round %d, want a real id and round 3", body.ID, body.Round)
	}
	if len(body.Civs) != 2 {
		t.Errorf("civs = %d, want 2", len(body.Civs))
	}
	if body.Speed != 1.0 {
		t.Errorf("speed = %v, want 1", body.Speed)
	}
}

func TestCivRoutes(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/v1/civs")
	var civs []sim.CivSummary
	decode(t, rec, &civs)
	if len(civs) != 2 || civs[0].Def != "helio-compact" {
		t.Fatalf("civs = %+v", civs)
	}

	rec = get(t, s, "/api/v1/civ/1")
	if rec.Code != http.StatusOK {
		t.Fatalf("civ detail status = %d", rec.Code)
	}
	var detail sim.CivDetail
	decode(t, rec, &detail)
	if detail.ID != 1 || detail.Caps.Cities < 1 {
		t.Errorf("detail = id %d caps %+v", detail.ID, detail.Caps)
	}

	for path, want := range map[string]int{
		"/api/v1/civ/99":    http.StatusNotFound,
		"/api/v1/civ/bogus": http.StatusBadRequest,
		"/api/v1/civ/":      http.StatusBadRequest,
	} {
		if rec := get(t, s, path); rec.Code != want {
			t.Errorf("GET %s = %d, want %d", path, rec.Code, want)
		}
	}
}

func TestEventsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/v1/events?limit=5")
	var events []civ.Event
	decode(t, rec, &events)
	if len(events) != 5 {
		t.Fatalf("limit ignored: got %d events", len(events))
	}

	rec = get(t, s, "/api/v1/events?civ=1")
	events = nil
	decode(t, rec, &events)
	if len(events) == 0 {
		t.Fatal("seat filter returned nothing")
	}
	for _, e := range events {
		if e.Civ != 1 {
			t.Errorf("seat filter leaked event for civ %d", e.Civ)
		}
	}

	if rec := get(t, s, "/api/v1/events?civ=bogus"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad seat filter = %d, want 400", rec.Code)
	}
}

func TestMapEndpoint(t *testing.T) {
	s, g := newTestServer(t)

	rec := get(t, s, "/api/v1/map")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Radius int `json:"radius"`
		Tiles  []struct {
			ID      int    `json:"id"`
			Terrain string `json:"terrain"`
		} `json:"tiles"`
		Cities []struct {
			Civ  civ.CivID `json:"civ"`
			Tile int       `json:"tile"`
		} `json:"cities"`
	}
	decode(t, rec, &body)

	if body.Radius != g.Map().Radius {
		t.Errorf("radius = %d, want %d", body.Radius, g.Map().Radius)
	}
	if len(body.Tiles) != g.Map().TileCount() {
		t.Errorf("tiles = %d, want %d", len(body.Tiles), g.Map().TileCount())
	}
	if body.Tiles[0].Terrain == "" {
		t.Error("tile terrain names missing")
	}
	for _, c := range body.Cities {
		if c.Civ == 0 || c.Tile < 0 {
			t.Errorf("malformed city overlay entry %+v", c)
		}
	}
}

func TestDefsEndpoints(t *testing.T) {
	s, g := newTestServer(t)
	cat := g.Catalog()

	rec := get(t, s, "/api/v1/defs")
	var index map[string]int
	decode(t, rec, &index)
	if index["technologies"] != len(cat.Technologies) {
		t.Errorf("index technologies = %d, want %d", index["technologies"], len(cat.Technologies))
	}

	rec = get(t, s, "/api/v1/defs/technologies")
	var techs []rules.TechnologyDef
	decode(t, rec, &techs)
	if len(techs) != len(cat.Technologies) {
		t.Fatalf("technologies = %d, want %d", len(techs), len(cat.Technologies))
	}
	for i := 1; i < len(techs); i++ {
		if techs[i-1].ID > techs[i].ID {
			t.Fatalf("technologies not sorted: %q before %q", techs[i-1].ID, techs[i].ID)
		}
	}

	if rec := get(t, s, "/api/v1/defs/wizardry"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown kind = %d, want 404", rec.Code)
	}
}

func TestSpeedEndpointAuth(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	post := func(token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/speed", strings.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := get(t, s, "/api/v1/speed"); rec.Code != http.StatusOK {
		t.Errorf("GET speed = %d, want 200 without auth", rec.Code)
	}
	if rec := post("", `{"speed": 2}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("POST without token = %d, want 401", rec.Code)
	}
	if rec := post("wrong", `{"speed": 2}`); rec.Code != http.StatusUnauthorized {
		t.Errorf("POST with wrong token = %d, want 401", rec.Code)
	}
	if rec := post("hunter2", `{"speed": 500}`); rec.Code != http.StatusBadRequest {
		t.Errorf("POST out-of-range speed = %d, want 400", rec.Code)
	}

	rec := post("hunter2", `{"speed": 2.5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("authorized POST = %d", rec.Code)
	}
	if got := s.Loop.Speed(); got != 2.5 {
		t.Errorf("loop speed = %v, want 2.5", got)
	}

	s.AdminKey = ""
	if rec := post("hunter2", `{"speed": 1}`); rec.Code != http.StatusForbidden {
		t.Errorf("POST with admin disabled = %d, want 403", rec.Code)
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	s, g := newTestServer(t)
	db, err := persistence.Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	s.DB = db

	h := s.Handler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/snapshot", nil)
	req.Header.Set("Authorization", "Bearer hunter2")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("snapshot = %d: %s", rec.Code, rec.Body)
	}

	saves, err := db.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(saves) != 1 || saves[0].ID != g.ID() {
		t.Errorf("saves = %+v, want the snapshotted game", saves)
	}

	if rec := get(t, s, "/api/v1/snapshot"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET snapshot = %d, want 405", rec.Code)
	}
}

func TestStreamAuth(t *testing.T) {
	s, _ := newTestServer(t)

	if rec := get(t, s, "/api/v1/stream"); rec.Code != http.StatusForbidden {
		t.Errorf("stream without relay key = %d, want 403", rec.Code)
	}

	s.RelayKey = "relay-secret"
	if rec := get(t, s, "/api/v1/stream"); rec.Code != http.StatusUnauthorized {
		t.Errorf("stream without token = %d, want 401", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("third request should be limited")
	}
	if rl.RetryAfter("10.0.0.1") <= 0 {
		t.Error("RetryAfter should be positive while limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("limits must be per IP")
	}

	// Age the bucket past the window; the budget resets.
	rl.mu.Lock()
	rl.buckets["10.0.0.1"].lastReset = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()
	if !rl.Allow("10.0.0.1") {
		t.Error("expired window should reset the budget")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:4242"
	if got := clientIP(req); got != "192.0.2.7" {
		t.Errorf("clientIP = %q, want 192.0.2.7", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 192.0.2.7")
	if got := clientIP(req); got != "203.0.113.9" {
		t.Errorf("clientIP with proxy chain = %q, want 203.0.113.9", got)
	}
}
