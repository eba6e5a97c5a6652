package sim

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// pausePoll is how often a paused loop rechecks the speed.
const pausePoll = 100 * time.Millisecond

// Loop paces a game's rounds in real time: one round per interval, scaled
// by a speed multiplier. Zero or negative speed pauses.
type Loop struct {
	game      *Game
	interval  time.Duration
	maxRounds int

	mu    sync.Mutex
	speed float64
}

// NewLoop wraps a game in a pacing loop. A nonpositive interval defaults
// to one second; maxRounds of zero runs until cancelled.
func NewLoop(game *Game, interval time.Duration, maxRounds int) *Loop {
	if interval <= 0 {
		interval = time.Second
	}
	return &Loop{game: game, interval: interval, maxRounds: maxRounds, speed: 1.0}
}

// Speed returns the current multiplier.
func (l *Loop) Speed() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.speed
}

// SetSpeed changes the multiplier. Zero or below pauses the loop.
func (l *Loop) SetSpeed(speed float64) {
	l.mu.Lock()
	l.speed = speed
	l.mu.Unlock()
	slog.Info("loop speed changed", "speed", speed)
}

// Run drives rounds until the context is cancelled or the round limit is
// reached. It blocks; run it from its own goroutine when serving traffic.
func (l *Loop) Run(ctx context.Context) {
	slog.Info("game loop started",
		"game", l.game.ID(),
		"interval", l.interval,
		"max_rounds", l.maxRounds,
	)
	defer slog.Info("game loop stopped", "game", l.game.ID(), "round", l.game.Round())

	for {
		speed := l.Speed()
		if speed <= 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(pausePoll):
			}
			continue
		}

		start := time.Now()
		l.game.RunRound()
		if l.maxRounds > 0 && l.game.Round() >= l.maxRounds {
			return
		}

		// Sleep out the remainder of the interval, adjusted for speed.
		target := time.Duration(float64(l.interval) / speed)
		elapsed := time.Since(start)
		if elapsed >= target {
			elapsed = target
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(target - elapsed):
		}
	}
}
