// Package config loads the stellarage configuration file and can keep it
// fresh while the server runs. Every knob has a default; a missing file
// just means a stock game.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/corvidae/stellar-age/internal/civ"
	"github.com/corvidae/stellar-age/internal/world"
)

// EnvConfig names the environment variable that overrides the config file
// location when no path is given on the command line.
const EnvConfig = "STELLARAGE_CONFIG"

const defaultRelPath = "configs/stellarage.yml"

// Config is the full configuration tree.
type Config struct {
	Server Server          `mapstructure:"server"`
	Log    Log             `mapstructure:"log"`
	Sim    Sim             `mapstructure:"sim"`
	DB     DB              `mapstructure:"db"`
	Rules  Rules           `mapstructure:"rules"`
	Gen    world.GenConfig `mapstructure:"gen"`
	Tuning civ.Tuning      `mapstructure:"tuning"`
}

// Server configures the HTTP API.
type Server struct {
	Addr        string   `mapstructure:"addr"`
	AdminKey    string   `mapstructure:"admin_key"`
	RelayKey    string   `mapstructure:"relay_key"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Log configures the console and rotating-file log outputs.
type Log struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Sim configures the game loop and seating.
type Sim struct {
	// Interval is the real time per round at speed 1.
	Interval time.Duration `mapstructure:"interval"`

	// MaxRounds stops the loop after this many rounds. Zero runs forever.
	MaxRounds int `mapstructure:"max_rounds"`

	// Speed is the initial loop speed multiplier. Zero starts paused.
	Speed float64 `mapstructure:"speed"`

	// AutosaveEvery saves the game every N rounds. Zero disables autosave.
	AutosaveEvery int `mapstructure:"autosave_every"`

	// Civs lists the civilization definitions to seat. Empty seats every
	// civilization in the catalog.
	Civs []string `mapstructure:"civs"`

	// Wars scripts diplomacy between seats. Empty keeps the peace.
	Wars []War `mapstructure:"wars"`

	// StartSpacing is the minimum tile distance between start positions.
	// Zero lets the game pick.
	StartSpacing int `mapstructure:"start_spacing"`
}

// War schedules one war between two seats: declared at the start of round
// From, peace at the start of round Until.
type War struct {
	A     uint64 `mapstructure:"a"`
	B     uint64 `mapstructure:"b"`
	From  int    `mapstructure:"from"`
	Until int    `mapstructure:"until"`
}

// DB configures the save database.
type DB struct {
	Path string `mapstructure:"path"`
}

// Rules points at an optional data-pack directory overlaying the built-in
// catalog.
type Rules struct {
	Dir string `mapstructure:"dir"`
}

// Defaults returns the stock configuration.
func Defaults() Config {
	return Config{
		Server: Server{Addr: ":8080"},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		Sim: Sim{
			Interval:      2 * time.Second,
			Speed:         1.0,
			AutosaveEvery: 25,
		},
		DB:     DB{Path: "stellarage.db"},
		Gen:    world.DefaultGenConfig(),
		Tuning: civ.DefaultTuning(),
	}
}

// Validate rejects values the rest of the program cannot work with.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Sim.Interval < 0 {
		return fmt.Errorf("sim.interval must not be negative, got %s", c.Sim.Interval)
	}
	if c.Sim.MaxRounds < 0 {
		return fmt.Errorf("sim.max_rounds must not be negative, got %d", c.Sim.MaxRounds)
	}
	if c.Sim.AutosaveEvery < 0 {
		return fmt.Errorf("sim.autosave_every must not be negative, got %d", c.Sim.AutosaveEvery)
	}
	for i, w := range c.Sim.Wars {
		if w.A == 0 || w.B == 0 || w.A == w.B {
			return fmt.Errorf("sim.wars[%d]: seats %d and %d cannot fight", i, w.A, w.B)
		}
		if w.Until <= w.From {
			return fmt.Errorf("sim.wars[%d]: until %d must come after from %d", i, w.Until, w.From)
		}
	}
	if c.Gen.Radius < 1 {
		return fmt.Errorf("gen.radius must be at least 1, got %d", c.Gen.Radius)
	}
	return nil
}

// Resolve picks the config file path: an explicit argument wins, then
// $STELLARAGE_CONFIG, then the nearest configs/stellarage.yml walking up
// from the working directory. An empty result means no file anywhere;
// Load then serves pure defaults.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, defaultRelPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
