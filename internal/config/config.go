// Package config provides YAML-based game configuration loading and
// difficulty presets for the candy arcade.
package config

import (
	"errors"
	"fmt"
	"time"
)

// CandyConfig contains all configuration for the candy match-3 game.
type CandyConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Palette   []string        `yaml:"palette"`
	Rules     RulesConfig     `yaml:"rules"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Session   SessionConfig   `yaml:"session"`
	Animation AnimationConfig `yaml:"animation"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// RulesConfig defines run thresholds and board maintenance.
type RulesConfig struct {
	MatchLength   int  `yaml:"match_length"`   // Shortest run that clears
	StripedLength int  `yaml:"striped_length"` // Run length that creates a striped token
	RainbowLength int  `yaml:"rainbow_length"` // Run length that creates a rainbow token
	Reshuffle     bool `yaml:"reshuffle"`      // Regenerate the board when no move is left
}

// ScoringConfig defines points per scoring event.
type ScoringConfig struct {
	Match   int `yaml:"match"`
	Striped int `yaml:"striped"`
	Rainbow int `yaml:"rainbow"`
	Bomb    int `yaml:"bomb"`
}

// SessionConfig defines the timed session.
type SessionConfig struct {
	Seconds int `yaml:"seconds"` // Length of a timed session; 0 disables the clock
}

// AnimationConfig defines how long each resolution phase is shown.
// Durations are in milliseconds.
type AnimationConfig struct {
	SwapMs    int `yaml:"swap_ms"`
	ExplodeMs int `yaml:"explode_ms"`
	FallMs    int `yaml:"fall_ms"` // Per row fallen
}

// Duration returns the session length.
func (s SessionConfig) Duration() time.Duration {
	return time.Duration(s.Seconds) * time.Second
}

// Swap returns the swap animation time.
func (a AnimationConfig) Swap() time.Duration {
	return time.Duration(a.SwapMs) * time.Millisecond
}

// Explode returns the time a cleared cell is shown before removal.
func (a AnimationConfig) Explode() time.Duration {
	return time.Duration(a.ExplodeMs) * time.Millisecond
}

// Fall returns the fall time for a token that drops the given number of rows.
func (a AnimationConfig) Fall(rows int) time.Duration {
	return time.Duration(a.FallMs*rows) * time.Millisecond
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid candy config")

// Validate reports the first problem that would prevent a game from starting.
// Palette color names are checked by the game when it builds the engine.
func (c CandyConfig) Validate() error {
	if c.Board.Rows < 3 || c.Board.Cols < 3 {
		return fmt.Errorf("board %dx%d smaller than 3x3: %w", c.Board.Rows, c.Board.Cols, ErrInvalid)
	}
	if len(c.Palette) < 3 {
		return fmt.Errorf("palette needs at least 3 colors, got %d: %w", len(c.Palette), ErrInvalid)
	}
	r := c.Rules
	if r.MatchLength < 3 || r.StripedLength <= r.MatchLength || r.RainbowLength <= r.StripedLength {
		return fmt.Errorf("run lengths %d/%d/%d must increase from 3: %w",
			r.MatchLength, r.StripedLength, r.RainbowLength, ErrInvalid)
	}
	s := c.Scoring
	if s.Match < 0 || s.Striped < 0 || s.Rainbow < 0 || s.Bomb < 0 {
		return fmt.Errorf("scores must not be negative: %w", ErrInvalid)
	}
	if c.Session.Seconds < 0 {
		return fmt.Errorf("session seconds must not be negative: %w", ErrInvalid)
	}
	a := c.Animation
	if a.SwapMs < 0 || a.ExplodeMs < 0 || a.FallMs < 0 {
		return fmt.Errorf("animation times must not be negative: %w", ErrInvalid)
	}
	return nil
}
