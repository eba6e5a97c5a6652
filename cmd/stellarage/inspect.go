package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/corvidae/stellar-age/internal/config"
	"github.com/corvidae/stellar-age/internal/persistence"
	"github.com/corvidae/stellar-age/internal/rules"
	"github.com/corvidae/stellar-age/internal/sim"
)

func inspectCmd() *cobra.Command {
	var dbPath, gameID, rulesDir string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect a saved game without running it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspectGame(dbPath, gameID, rulesDir)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the save database (default: from config)")
	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (default: most recent save)")
	cmd.Flags().StringVar(&rulesDir, "rules", "", "Data-pack directory overlaying the built-in catalog")
	return cmd
}

func inspectGame(dbPath, gameID, rulesDir string) error {
	cfg, err := config.Load(config.Resolve(cfgFlag))
	if err != nil {
		return err
	}
	if dbPath == "" {
		dbPath = cfg.DB.Path
	}
	if rulesDir == "" {
		rulesDir = cfg.Rules.Dir
	}

	db, err := persistence.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	saves, err := db.ListGames()
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		return fmt.Errorf("no saves in %s", dbPath)
	}
	if gameID == "" {
		gameID = saves[0].ID
	}

	cat, err := rules.Load(rulesDir)
	if err != nil {
		return err
	}
	g, err := db.LoadGame(gameID, cat, sim.Options{})
	if err != nil {
		return fmt.Errorf("load save %s: %w", gameID, err)
	}

	title := color.New(color.FgCyan, color.Bold)
	title.Printf("\nGame %s, round %d\n\n", g.ID(), g.Round())

	civTable(g)
	eventLog(db, gameID)
	savesTable(saves, gameID)
	return nil
}

func civTable(g *sim.Game) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Seat", "Civilization", "Gov", "Cities", "Units", "Gold", "Researching", "Adopting", "Religion", "Wars"}),
	)
	for _, c := range g.Status().Civs {
		name := c.Name
		if c.Famine {
			name += " (famine)"
		}
		table.Append([]string{
			strconv.FormatUint(uint64(c.ID), 10),
			name,
			orDash(c.Government),
			strconv.Itoa(c.Cities),
			strconv.Itoa(c.CombatUnits + c.WorkerUnits),
			humanize.Comma(int64(c.Stockpiles["gold"])),
			orDash(c.Researching),
			orDash(c.Adopting),
			orDash(c.Religion),
			strconv.Itoa(len(c.AtWar)),
		})
	}
	table.Render()
}

func eventLog(db *persistence.DB, gameID string) {
	events, err := db.RecentEvents(gameID, 12)
	if err != nil || len(events) == 0 {
		return
	}
	fmt.Println("\nRecent events:")
	for _, e := range events {
		fmt.Printf("  r%-4d seat %-2d %-20s %s\n", e.Round, e.Civ, e.Kind, e.Message)
	}
}

func savesTable(saves []persistence.SaveInfo, current string) {
	fmt.Println("\nSaves:")
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Game", "Round", "Civs", "Saved"}),
	)
	for _, s := range saves {
		id := s.ID
		if s.ID == current {
			id += " *"
		}
		table.Append([]string{id, strconv.Itoa(s.Round), strconv.Itoa(s.Civs), savedAgo(s.SavedAt)})
	}
	table.Render()
}

// savedAgo renders a save timestamp as a relative time, falling back to
// the raw string when it does not parse.
func savedAgo(stamp string) string {
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return stamp
	}
	return humanize.Time(t)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
