package candy

import (
	"time"

	"github.com/vovakirdan/candy-arcade/internal/games/candy/engine"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
	StateBroken      GameStateType = "config_error"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string // "timed" or "endless"
	Score     int
	Board     string // Engine board dump, one line per row
	Cursor    engine.Pos
	Selected  *engine.Pos
	TimeLeft  time.Duration
	Swaps     int
	BestChain int
	Specials  int
	Shuffles  int
	Frames    int // Playback frames still queued
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.err != nil:
		return Snapshot{Tick: g.tick, Mode: string(g.mode), State: StateBroken}
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.Animating():
		state = StateAnimating
	}

	es := g.eng.Snapshot()
	snap := Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Score:     es.Score,
		Board:     es.Board.String(),
		Cursor:    g.cursor,
		TimeLeft:  g.TimeLeft(),
		Swaps:     es.Swaps,
		BestChain: es.BestChain,
		Specials:  es.Specials,
		Shuffles:  es.Shuffles,
		Frames:    len(g.frames),
		State:     state,
	}
	if es.HasSelected {
		sel := es.Selected
		snap.Selected = &sel
	}
	return snap
}
