package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TicksFor converts a duration to whole simulation ticks, rounding up so
// that any positive duration lasts at least one tick.
func (c RuntimeConfig) TicksFor(d time.Duration) int {
	if d <= 0 || c.TickRate <= 0 {
		return 0
	}
	scaled := d * time.Duration(c.TickRate)
	return int((scaled + time.Second - 1) / time.Second)
}

// GameState represents the current game state.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// SessionStats summarizes one play session for persistence.
type SessionStats struct {
	Score     int
	Swaps     int
	BestChain int
	Specials  int
	Shuffles  int
	Elapsed   time.Duration
	EndReason string
}
