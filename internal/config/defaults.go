package config

import (
	_ "embed"
)

//go:embed defaults/candy.yaml
var defaultCandyYAML []byte

// DefaultCandyConfig returns the built-in candy configuration.
func DefaultCandyConfig() CandyConfig {
	return CandyConfig{
		Board: BoardConfig{
			Rows: 10,
			Cols: 8,
		},
		Palette: []string{"red", "yellow", "blue", "green"},
		Rules: RulesConfig{
			MatchLength:   3,
			StripedLength: 4,
			RainbowLength: 5,
			Reshuffle:     true,
		},
		Scoring: ScoringConfig{
			Match:   60,
			Striped: 120,
			Rainbow: 1000,
			Bomb:    500,
		},
		Session: SessionConfig{
			Seconds: 60,
		},
		Animation: AnimationConfig{
			SwapMs:    100,
			ExplodeMs: 80,
			FallMs:    60,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "candy", "candy_endless":
		return defaultCandyYAML
	default:
		return nil
	}
}
