package config

import (
	"fmt"
	"slices"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// extraColors are appended, in order, when a preset widens the palette.
var extraColors = []string{"purple", "orange"}

// ParseDifficulty converts a flag value to a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(s)
	if !slices.Contains(Presets(), p) {
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
	return p, nil
}

// Apply adjusts cfg for the preset. Fewer colors produce more matches, so
// easy narrows the palette to three and hard widens it by one, and the
// session clock is lengthened or shortened by half its value.
// Normal returns cfg unchanged.
func (p DifficultyPreset) Apply(cfg CandyConfig) CandyConfig {
	cfg.Palette = slices.Clone(cfg.Palette)

	switch p {
	case DifficultyEasy:
		if len(cfg.Palette) > 3 {
			cfg.Palette = cfg.Palette[:3]
		}
		cfg.Session.Seconds += cfg.Session.Seconds / 2
	case DifficultyHard:
		for _, c := range extraColors {
			if !slices.Contains(cfg.Palette, c) {
				cfg.Palette = append(cfg.Palette, c)
				break
			}
		}
		cfg.Session.Seconds -= cfg.Session.Seconds / 4
	}
	return cfg
}
