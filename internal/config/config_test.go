package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadWithoutFileServesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	if cfg.Server.Addr != want.Server.Addr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, want.Server.Addr)
	}
	if cfg.Sim.Interval != want.Sim.Interval {
		t.Errorf("Sim.Interval = %s, want %s", cfg.Sim.Interval, want.Sim.Interval)
	}
	if cfg.Tuning != want.Tuning {
		t.Errorf("Tuning = %+v, want %+v", cfg.Tuning, want.Tuning)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stellarage.yml")
	writeFile(t, path, `
server:
  addr: ":9999"
  cors_origins:
    - https://stellarage.example.com
log:
  level: debug
sim:
  interval: 500ms
  civs:
    - helio-compact
    - void-syndicate
  wars:
    - a: 1
      b: 2
      from: 10
      until: 14
gen:
  radius: 10
  seed: 7
tuning:
  food_floor: -5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q, want :9999", cfg.Server.Addr)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "https://stellarage.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Sim.Interval != 500*time.Millisecond {
		t.Errorf("Sim.Interval = %s, want 500ms", cfg.Sim.Interval)
	}
	if len(cfg.Sim.Civs) != 2 || cfg.Sim.Civs[0] != "helio-compact" {
		t.Errorf("Sim.Civs = %v", cfg.Sim.Civs)
	}
	if len(cfg.Sim.Wars) != 1 || cfg.Sim.Wars[0] != (War{A: 1, B: 2, From: 10, Until: 14}) {
		t.Errorf("Sim.Wars = %+v", cfg.Sim.Wars)
	}
	if cfg.Gen.Radius != 10 || cfg.Gen.Seed != 7 {
		t.Errorf("Gen = %+v, want radius 10 seed 7", cfg.Gen)
	}
	if cfg.Tuning.FoodFloor != -5 {
		t.Errorf("Tuning.FoodFloor = %d, want -5", cfg.Tuning.FoodFloor)
	}

	// Untouched keys keep their defaults.
	if cfg.DB.Path != "stellarage.db" {
		t.Errorf("DB.Path = %q, want default", cfg.DB.Path)
	}
	if cfg.Log.MaxSizeMB != 50 {
		t.Errorf("Log.MaxSizeMB = %d, want default 50", cfg.Log.MaxSizeMB)
	}
	if cfg.Gen.SeaLevel != Defaults().Gen.SeaLevel {
		t.Errorf("Gen.SeaLevel = %v, want default", cfg.Gen.SeaLevel)
	}
	if cfg.Tuning.LowFoodRounds != Defaults().Tuning.LowFoodRounds {
		t.Errorf("Tuning.LowFoodRounds = %d, want default", cfg.Tuning.LowFoodRounds)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "nope.yml")); err == nil {
			t.Fatal("Load read a file that is not there")
		}
	})

	t.Run("mangled yaml", func(t *testing.T) {
		path := filepath.Join(dir, "mangled.yml")
		writeFile(t, path, "server: [what\n")
		if _, err := Load(path); err == nil {
			t.Fatal("Load accepted mangled yaml")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yml")
		writeFile(t, path, "gen:\n  radius: 0\n")
		_, err := Load(path)
		if err == nil {
			t.Fatal("Load accepted a zero-radius map")
		}
		if !strings.Contains(err.Error(), "gen.radius") {
			t.Errorf("error %q does not name the bad key", err)
		}
	})

	t.Run("war against self", func(t *testing.T) {
		path := filepath.Join(dir, "selfwar.yml")
		writeFile(t, path, "sim:\n  wars:\n    - a: 1\n      b: 1\n      from: 2\n      until: 5\n")
		_, err := Load(path)
		if err == nil {
			t.Fatal("Load accepted a war of a seat against itself")
		}
		if !strings.Contains(err.Error(), "sim.wars[0]") {
			t.Errorf("error %q does not name the bad entry", err)
		}
	})
}

func TestResolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "env.yml")
	writeFile(t, envPath, "log:\n  level: warn\n")

	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv(EnvConfig, envPath)
		if got := Resolve("explicit.yml"); got != "explicit.yml" {
			t.Errorf("Resolve = %q, want explicit.yml", got)
		}
	})

	t.Run("env when no explicit", func(t *testing.T) {
		t.Setenv(EnvConfig, envPath)
		if got := Resolve(""); got != envPath {
			t.Errorf("Resolve = %q, want %q", got, envPath)
		}
	})

	t.Run("walks up to configs dir", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		root := t.TempDir()
		found := filepath.Join(root, "configs", "stellarage.yml")
		writeFile(t, found, "log:\n  level: error\n")
		nested := filepath.Join(root, "a", "b")
		if err := os.MkdirAll(nested, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		t.Chdir(nested)

		got := Resolve("")
		// Resolve works on the observed working directory, which may be a
		// symlinked view of the temp root.
		if filepath.Base(got) != "stellarage.yml" {
			t.Errorf("Resolve = %q, want a configs/stellarage.yml", got)
		}
		if _, err := os.Stat(got); err != nil {
			t.Errorf("Resolve returned a path that does not exist: %v", err)
		}
	})
}
