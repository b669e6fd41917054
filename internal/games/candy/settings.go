package candy

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/candy-arcade/internal/config"
	"github.com/vovakirdan/candy-arcade/internal/core"
	"github.com/vovakirdan/candy-arcade/internal/games/candy/engine"
)

var (
	settingsMu sync.RWMutex
	settings   = config.DefaultCandyConfig()
)

// SetConfig sets the configuration used by games reset afterwards.
func SetConfig(cfg config.CandyConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

// CurrentConfig returns the configuration new games will use.
func CurrentConfig() config.CandyConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// ParsePalette converts color names to engine colors.
func ParsePalette(names []string) ([]engine.Color, error) {
	palette := make([]engine.Color, 0, len(names))
	for _, name := range names {
		c, ok := engine.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("candy: unknown palette color %q", name)
		}
		palette = append(palette, c)
	}
	return palette, nil
}

// EngineConfig builds an engine configuration from the YAML settings.
// Hooks are left empty for the caller to fill.
func EngineConfig(cfg config.CandyConfig, rng engine.Rand) (engine.Config, error) {
	palette, err := ParsePalette(cfg.Palette)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		Rows:    cfg.Board.Rows,
		Cols:    cfg.Board.Cols,
		Palette: palette,
		Thresholds: engine.Thresholds{
			Match:   cfg.Rules.MatchLength,
			Striped: cfg.Rules.StripedLength,
			Rainbow: cfg.Rules.RainbowLength,
		},
		Scores: engine.ScoreTable{
			Match:   cfg.Scoring.Match,
			Striped: cfg.Scoring.Striped,
			Rainbow: cfg.Scoring.Rainbow,
			Bomb:    cfg.Scoring.Bomb,
		},
		Rand:      rng,
		Reshuffle: cfg.Rules.Reshuffle,
	}, nil
}

// tokenColors maps palette colors to terminal colors.
var tokenColors = map[engine.Color]core.Color{
	engine.ColorRed:    core.ColorRed,
	engine.ColorYellow: core.ColorYellow,
	engine.ColorBlue:   core.ColorBlue,
	engine.ColorGreen:  core.ColorGreen,
	engine.ColorPurple: core.ColorMagenta,
	engine.ColorOrange: core.ColorOrange,
}

// ScreenColor returns the terminal color for a palette color.
func ScreenColor(c engine.Color) core.Color {
	if sc, ok := tokenColors[c]; ok {
		return sc
	}
	return core.ColorWhite
}
