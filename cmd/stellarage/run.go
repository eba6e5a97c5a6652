package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/corvidae/stellar-age/internal/api"
	"github.com/corvidae/stellar-age/internal/civ"
	"github.com/corvidae/stellar-age/internal/config"
	"github.com/corvidae/stellar-age/internal/logging"
	"github.com/corvidae/stellar-age/internal/persistence"
	"github.com/corvidae/stellar-age/internal/rules"
	"github.com/corvidae/stellar-age/internal/sim"
	"github.com/corvidae/stellar-age/internal/world"
)

func runCmd() *cobra.Command {
	var fresh bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(fresh)
		},
	}
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Start a new game even when a save exists")
	return cmd
}

func runServer(fresh bool) error {
	// .env first so the config path and keys can come from it.
	if err := godotenv.Load(); err == nil {
		fmt.Println("loaded .env file")
	}

	cfgPath := config.Resolve(cfgFlag)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := logging.Init("stellarage", cfg.Log); err != nil {
		return err
	}
	defer logging.Sync()
	if cfgPath != "" {
		slog.Info("config loaded", "path", cfgPath)
	}

	// ── Catalog ───────────────────────────────────────────────────────

	cat, err := rules.Load(cfg.Rules.Dir)
	if err != nil {
		return err
	}
	slog.Info("catalog ready",
		"technologies", len(cat.Technologies),
		"cultures", len(cat.Cultures),
		"policies", len(cat.Policies),
		"civilizations", len(cat.Civilizations),
	)

	// ── Database ──────────────────────────────────────────────────────

	if dir := filepath.Dir(cfg.DB.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := persistence.Open(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DB.Path)

	// ── Load or create the game ───────────────────────────────────────

	opts := sim.Options{
		Civs:         seatList(cfg, cat),
		Tuning:       cfg.Tuning,
		Wars:         warScript(cfg.Sim.Wars),
		StartSpacing: cfg.Sim.StartSpacing,
	}

	var g *sim.Game
	resumed := false
	if !fresh {
		switch id, err := db.LatestGameID(); {
		case err == nil:
			g, err = db.LoadGame(id, cat, opts)
			if err != nil {
				return fmt.Errorf("load save %s: %w", id, err)
			}
			slog.Info("resuming saved game", "game", g.ID(), "round", g.Round())
			resumed = true
		case errors.Is(err, sql.ErrNoRows):
			// No save yet; fall through to generation.
		default:
			return err
		}
	}
	if g == nil {
		slog.Info("generating world", "radius", cfg.Gen.Radius, "seed", cfg.Gen.Seed)
		m := world.Generate(cfg.Gen)
		g, err = sim.NewGame(cat, m, opts)
		if err != nil {
			return err
		}
		if err := db.SaveGame(g); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	// ── Loop and API ──────────────────────────────────────────────────

	loop := sim.NewLoop(g, cfg.Sim.Interval, cfg.Sim.MaxRounds)
	if cfg.Sim.Speed != 1.0 {
		loop.SetSpeed(cfg.Sim.Speed)
	}

	adminKey := cfg.Server.AdminKey
	if adminKey == "" {
		adminKey = os.Getenv("STELLARAGE_ADMIN_KEY")
	}
	if adminKey == "" {
		slog.Warn("no admin key set, admin POST endpoints are disabled")
	}
	relayKey := cfg.Server.RelayKey
	if relayKey == "" {
		relayKey = os.Getenv("STELLARAGE_RELAY_KEY")
	}

	srv := &api.Server{
		Game:        g,
		Loop:        loop,
		DB:          db,
		Addr:        cfg.Server.Addr,
		AdminKey:    adminKey,
		RelayKey:    relayKey,
		CORSOrigins: cfg.Server.CORSOrigins,
	}
	srv.Start()

	// Live-reload the loop speed and balance tuning when the config file
	// changes. Tuning lands between rounds.
	if cfgPath != "" {
		if err := config.Watch(cfgPath, func(next config.Config) {
			loop.SetSpeed(next.Sim.Speed)
			g.SetTuning(next.Tuning)
		}); err != nil {
			slog.Warn("config watch disabled", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sim.AutosaveEvery > 0 {
		go autosave(ctx, db, g, cfg.Sim.AutosaveEvery)
	}

	banner(g, cfg, resumed)
	loop.Run(ctx)

	// ── Shutdown ──────────────────────────────────────────────────────

	slog.Info("saving final state", "game", g.ID(), "round", g.Round())
	if err := db.SaveGame(g); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Printf("\nGame stopped at round %d. State saved.\n", g.Round())
	return nil
}

// seatList returns the civilizations to seat: the configured list, or the
// whole catalog in ID order.
func seatList(cfg config.Config, cat *rules.Catalog) []string {
	if len(cfg.Sim.Civs) > 0 {
		return cfg.Sim.Civs
	}
	ids := make([]string, 0, len(cat.Civilizations))
	for id := range cat.Civilizations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func warScript(wars []config.War) []sim.WarTerm {
	terms := make([]sim.WarTerm, 0, len(wars))
	for _, w := range wars {
		terms = append(terms, sim.WarTerm{A: civ.CivID(w.A), B: civ.CivID(w.B), From: w.From, Until: w.Until})
	}
	return terms
}

// autosave persists the game whenever it has advanced enough rounds since
// the last save. Sampled on a coarse ticker so fast loops do not hammer
// the database.
func autosave(ctx context.Context, db *persistence.DB, g *sim.Game, every int) {
	lastSaved := g.Round()
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			round := g.Round()
			if round-lastSaved < every {
				continue
			}
			if err := db.SaveGame(g); err != nil {
				slog.Error("autosave failed", "error", err)
				continue
			}
			slog.Info("autosaved", "game", g.ID(), "round", round)
			lastSaved = round
		}
	}
}

func banner(g *sim.Game, cfg config.Config, resumed bool) {
	title := color.New(color.FgCyan, color.Bold)
	title.Println("\n╭─────────────────────────────╮")
	title.Println("│      S T E L L A R  A G E   │")
	title.Println("╰─────────────────────────────╯")

	st := g.Status()
	fmt.Printf("\n%d civilizations on %d tiles.\n", len(st.Civs), st.Tiles)
	for _, c := range st.Civs {
		fmt.Printf("  seat %d: %s, led by %s\n", c.ID, c.Name, c.Leader)
	}
	fmt.Printf("\nAPI:    http://%s/api/v1/status\n", displayAddr(cfg.Server.Addr))
	fmt.Printf("Events: http://%s/api/v1/events\n", displayAddr(cfg.Server.Addr))
	if resumed {
		fmt.Printf("Resuming from round %d.\n", st.Round)
	}
	fmt.Println("Running... (Ctrl+C to stop)")
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
