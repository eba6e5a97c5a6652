package sim

import (
	"context"
	"testing"
	"time"
)

func TestLoopStopsAtMaxRounds(t *testing.T) {
	cat := testCatalog()
	g, err := NewGame(cat, testMap(t, 3, flatland(3)), Options{Civs: []string{"testers"}})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	loop := NewLoop(g, time.Millisecond, 3)
	done := make(chan struct{})
	go func() {
		loop.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop at its round limit")
	}
	if got := g.Round(); got != 3 {
		t.Errorf("Round() = %d after the loop, want 3", got)
	}
}

func TestLoopHonorsContext(t *testing.T) {
	cat := testCatalog()
	g, err := NewGame(cat, testMap(t, 3, flatland(3)), Options{Civs: []string{"testers"}})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	loop := NewLoop(g, time.Hour, 0)
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop ignored context cancellation")
	}
}

func TestLoopSpeedControl(t *testing.T) {
	cat := testCatalog()
	g, err := NewGame(cat, testMap(t, 3, flatland(3)), Options{Civs: []string{"testers"}})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	loop := NewLoop(g, 0, 1)
	if got := loop.Speed(); got != 1 {
		t.Errorf("Speed() = %v on a fresh loop, want 1", got)
	}
	loop.SetSpeed(2.5)
	if got := loop.Speed(); got != 2.5 {
		t.Errorf("Speed() = %v after SetSpeed, want 2.5", got)
	}
	loop.SetSpeed(0)
	if got := loop.Speed(); got != 0 {
		t.Errorf("Speed() = %v after pausing, want 0", got)
	}

	// A paused loop still honors cancellation.
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("paused loop ignored context cancellation")
	}
}
