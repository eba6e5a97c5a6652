// Package api serves game state over HTTP.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/corvidae/stellar-age/internal/civ"
	"github.com/corvidae/stellar-age/internal/persistence"
	"github.com/corvidae/stellar-age/internal/sim"
)

const maxSSEConns = 2

// Server serves one game over HTTP.
type Server struct {
	Game     *sim.Game
	Loop     *sim.Loop       // nil disables speed control
	DB       *persistence.DB // nil disables saves and snapshots
	Addr     string
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
	RelayKey string // Bearer token for the SSE stream. Empty = streaming disabled.

	// CORSOrigins is the extra allowlist on top of localhost dev servers.
	CORSOrigins []string

	// Active SSE connection count (atomic).
	sseConns int32
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := s.Addr
	if addr == "" {
		addr = ":8080"
	}
	slog.Info("HTTP API starting",
		"addr", addr,
		"admin_auth", s.AdminKey != "",
		"relay_auth", s.RelayKey != "",
	)

	go func() {
		if err := http.ListenAndServe(addr, s.Handler()); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Handler returns the full route table behind the CORS layer.
func (s *Server) Handler() http.Handler {
	// Bulk read endpoints serialize the whole board; keep scrapers honest.
	bulkLimiter := NewRateLimiter(60, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only; anyone can check in on the game).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/civs", s.handleCivs)
	mux.HandleFunc("/api/v1/civ/", s.handleCivDetail)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/map", RateLimitMiddleware(bulkLimiter, s.handleMap))
	mux.HandleFunc("/api/v1/defs", RateLimitMiddleware(bulkLimiter, s.handleDefsRoutes))
	mux.HandleFunc("/api/v1/defs/", RateLimitMiddleware(bulkLimiter, s.handleDefsRoutes))
	mux.HandleFunc("/api/v1/saves", s.handleSaves)

	// SSE streaming endpoint (GET, bearer token, relay only).
	mux.HandleFunc("/api/v1/stream", s.handleStream)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/snapshot", s.adminOnly(s.handleSnapshot))

	return s.corsMiddleware(mux)
}

// corsMiddleware adds CORS headers for allowed frontend origins. Localhost
// dev servers are always allowed; CORSOrigins extends the list.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	for _, origin := range s.CORSOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request carries the admin token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
// GET requests pass through (for endpoints that support both).
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled (no admin key set)", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.Game.Status()

	status := map[string]any{
		"id":    st.ID,
		"round": st.Round,
		"tiles": st.Tiles,
		"civs":  st.Civs,
	}
	if s.Loop != nil {
		speed := s.Loop.Speed()
		status["speed"] = speed
		status["paused"] = speed <= 0
	}
	writeJSON(w, status)
}

func (s *Server) handleCivs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Game.CivSummaries())
}

func (s *Server) handleCivDetail(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[4] == "" {
		http.Error(w, "missing civ id", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseUint(parts[4], 10, 64)
	if err != nil {
		http.Error(w, "invalid civ id", http.StatusBadRequest)
		return
	}

	detail, ok := s.Game.CivDetail(civ.CivID(id))
	if !ok {
		http.Error(w, "civ not found", http.StatusNotFound)
		return
	}
	writeJSON(w, detail)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events := s.Game.Events(0)

	// Optional seat filter: returns only one civilization's events.
	if seat := r.URL.Query().Get("civ"); seat != "" {
		id, err := strconv.ParseUint(seat, 10, 64)
		if err != nil {
			http.Error(w, "invalid civ id", http.StatusBadRequest)
			return
		}
		var filtered []civ.Event
		for _, e := range events {
			if e.Civ == civ.CivID(id) {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	start := 0
	if len(events) > limit {
		start = len(events) - limit
	}
	writeJSON(w, events[start:])
}

// handleMap returns the whole board for the hex map renderer: every tile
// plus a city overlay.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	type tileEntry struct {
		ID        int      `json:"id"`
		Q         int      `json:"q"`
		R         int      `json:"r"`
		Terrain   string   `json:"terrain"`
		Elevation float64  `json:"elevation"`
		Features  []string `json:"features,omitempty"`
	}

	type cityEntry struct {
		Civ        civ.CivID `json:"civ"`
		ID         int       `json:"id"`
		Name       string    `json:"name"`
		Tile       int       `json:"tile"`
		Population int       `json:"population"`
	}

	m := s.Game.Map()
	tiles := make([]tileEntry, 0, m.TileCount())
	for _, t := range m.Tiles {
		entry := tileEntry{
			ID:        t.ID,
			Q:         t.Coord.Q,
			R:         t.Coord.R,
			Terrain:   t.Terrain.Name(),
			Elevation: t.Elevation,
		}
		for f := range t.Features {
			entry.Features = append(entry.Features, f)
		}
		sort.Strings(entry.Features)
		tiles = append(tiles, entry)
	}

	var cities []cityEntry
	for _, c := range s.Game.CivSummaries() {
		detail, ok := s.Game.CivDetail(c.ID)
		if !ok {
			continue
		}
		for _, cv := range detail.CityList {
			cities = append(cities, cityEntry{
				Civ:        c.ID,
				ID:         cv.ID,
				Name:       cv.Name,
				Tile:       cv.Center,
				Population: cv.Population,
			})
		}
	}

	writeJSON(w, map[string]any{
		"radius": m.Radius,
		"seed":   m.Seed,
		"tiles":  tiles,
		"cities": cities,
	})
}

// handleDefsRoutes dispatches between the catalog index (GET /api/v1/defs)
// and one definition table (GET /api/v1/defs/:kind).
func (s *Server) handleDefsRoutes(w http.ResponseWriter, r *http.Request) {
	kind := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/defs"), "/")
	cat := s.Game.Catalog()

	if kind == "" {
		writeJSON(w, map[string]int{
			"technologies":  len(cat.Technologies),
			"cultures":      len(cat.Cultures),
			"policies":      len(cat.Policies),
			"governments":   len(cat.Governments),
			"combat-units":  len(cat.CombatUnits),
			"worker-units":  len(cat.WorkerUnits),
			"buildings":     len(cat.Buildings),
			"equipment":     len(cat.Equipment),
			"projectiles":   len(cat.Projectiles),
			"resources":     len(cat.Resources),
			"beliefs":       len(cat.Beliefs),
			"pantheons":     len(cat.Pantheons),
			"religions":     len(cat.Religions),
			"civilizations": len(cat.Civilizations),
		})
		return
	}

	switch kind {
	case "technologies":
		writeJSON(w, sortedByID(cat.Technologies))
	case "cultures":
		writeJSON(w, sortedByID(cat.Cultures))
	case "policies":
		writeJSON(w, sortedByID(cat.Policies))
	case "governments":
		writeJSON(w, sortedByID(cat.Governments))
	case "combat-units":
		writeJSON(w, sortedByID(cat.CombatUnits))
	case "worker-units":
		writeJSON(w, sortedByID(cat.WorkerUnits))
	case "buildings":
		writeJSON(w, sortedByID(cat.Buildings))
	case "equipment":
		writeJSON(w, sortedByID(cat.Equipment))
	case "projectiles":
		writeJSON(w, sortedByID(cat.Projectiles))
	case "resources":
		writeJSON(w, sortedByID(cat.Resources))
	case "beliefs":
		writeJSON(w, sortedByID(cat.Beliefs))
	case "pantheons":
		writeJSON(w, sortedByID(cat.Pantheons))
	case "religions":
		writeJSON(w, sortedByID(cat.Religions))
	case "civilizations":
		writeJSON(w, sortedByID(cat.Civilizations))
	default:
		http.Error(w, "unknown definition kind", http.StatusNotFound)
	}
}

// sortedByID flattens a catalog table into an ID-ordered slice.
func sortedByID[D any](m map[string]*D) []*D {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*D, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func (s *Server) handleSaves(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}
	saves, err := s.DB.ListGames()
	if err != nil {
		slog.Error("list saves failed", "error", err)
		http.Error(w, "list saves failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, saves)
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if s.Loop == nil {
		http.Error(w, "game loop not running", http.StatusServiceUnavailable)
		return
	}

	if r.Method == http.MethodPost {
		var req struct {
			Speed float64 `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Speed < 0 || req.Speed > 100 {
			http.Error(w, "speed must be 0-100", http.StatusBadRequest)
			return
		}
		s.Loop.SetSpeed(req.Speed)
	}

	writeJSON(w, map[string]float64{"speed": s.Loop.Speed()})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	if err := s.DB.SaveGame(s.Game); err != nil {
		slog.Error("snapshot save failed", "error", err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"round":   s.Game.Round(),
		"message": "snapshot saved",
	})
}

// handleStream provides an SSE endpoint for real-time event streaming.
// Requires bearer token auth and limits concurrent connections.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	// Auth check uses the relay key, not the admin key.
	if s.RelayKey == "" {
		http.Error(w, "streaming disabled (no relay key)", http.StatusForbidden)
		return
	}
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.RelayKey {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Connection limit.
	current := atomic.AddInt32(&s.sseConns, 1)
	if current > maxSSEConns {
		atomic.AddInt32(&s.sseConns, -1)
		http.Error(w, "too many SSE connections", http.StatusServiceUnavailable)
		return
	}
	defer atomic.AddInt32(&s.sseConns, -1)

	// SSE headers.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	subID, ch := s.Game.Subscribe(64)
	defer s.Game.Unsubscribe(subID)

	// Send recent events as catch-up.
	for _, e := range s.Game.Events(50) {
		writeSSEEvent(w, e)
	}
	flusher.Flush()

	slog.Info("SSE client connected", "sub_id", subID)

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return
			}
			writeSSEEvent(w, e)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		case <-r.Context().Done():
			slog.Info("SSE client disconnected", "sub_id", subID)
			return
		}
	}
}

// writeSSEEvent writes a single event in SSE format.
func writeSSEEvent(w http.ResponseWriter, e civ.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Kind, data)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
