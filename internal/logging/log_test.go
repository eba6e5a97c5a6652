package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/corvidae/stellar-age/internal/config"
)

func TestHandlerForwardsRecords(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := slog.New(&handler{core: core, name: "test"})

	log.Info("city founded", "city", "Port Meridian", "pop", 3)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("core saw %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Message != "city founded" {
		t.Errorf("message = %q", e.Message)
	}
	if e.Level != zapcore.InfoLevel {
		t.Errorf("level = %s, want info", e.Level)
	}
	if e.LoggerName != "test" {
		t.Errorf("logger name = %q, want test", e.LoggerName)
	}
	ctx := e.ContextMap()
	if ctx["city"] != "Port Meridian" {
		t.Errorf("city field = %v", ctx["city"])
	}
	if ctx["pop"] != int64(3) {
		t.Errorf("pop field = %v (%T)", ctx["pop"], ctx["pop"])
	}
}

func TestHandlerHonorsCoreLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := slog.New(&handler{core: core})

	log.Debug("too quiet to hear")
	if logs.Len() != 0 {
		t.Fatalf("debug entry passed an info-level core")
	}
	log.Warn("loud enough")
	if logs.Len() != 1 {
		t.Fatalf("warn entry did not pass, saw %d", logs.Len())
	}
	if logs.All()[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %s, want warn", logs.All()[0].Level)
	}
}

func TestHandlerAttrsAndGroups(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := slog.New(&handler{core: core})

	log.With("game", "g1").WithGroup("civ").Info("seated",
		"id", 2,
		slog.Group("stock", "gold", 100),
	)

	if logs.Len() != 1 {
		t.Fatalf("core saw %d entries, want 1", logs.Len())
	}
	ctx := logs.All()[0].ContextMap()
	if ctx["game"] != "g1" {
		t.Errorf("bound attr missing: %v", ctx)
	}
	if ctx["civ.id"] != int64(2) {
		t.Errorf("group did not prefix key: %v", ctx)
	}
	if ctx["civ.stock.gold"] != int64(100) {
		t.Errorf("nested group did not flatten: %v", ctx)
	}
}

func TestInitWritesJSONFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "app.log")
	if err := Init("stellarage", config.Log{Level: "debug", File: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	slog.Info("round complete", "round", 3)
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"msg":"round complete"`, `"round":3`, `"logger":"stellarage"`, `"level":"INFO"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log file missing %s:\n%s", want, out)
		}
	}
}

func TestInitRejectsBadLevel(t *testing.T) {
	if err := Init("stellarage", config.Log{Level: "chatty"}); err == nil {
		t.Fatal("Init accepted a level zap cannot parse")
	}
}
