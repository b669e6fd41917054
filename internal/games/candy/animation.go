package candy

import (
	"time"

	"github.com/vovakirdan/candy-arcade/internal/games/candy/engine"
)

// shuffleHold is how long a regenerated board is shown before play resumes.
const shuffleHold = 600 * time.Millisecond

// frame is one engine phase held on screen for a number of ticks.
type frame struct {
	event engine.PhaseEvent
	ticks int
}

// frameDuration returns how long a phase is shown. Settle frames carry no
// picture of their own and are skipped.
func (g *Game) frameDuration(ev engine.PhaseEvent) time.Duration {
	a := g.cfg.Animation
	switch ev.Phase {
	case engine.PhaseSwap, engine.PhaseRevert:
		return a.Swap()
	case engine.PhaseMark, engine.PhaseSweep:
		return a.Explode()
	case engine.PhaseRefill:
		return a.Fall(longestFall(ev.Falls))
	case engine.PhaseShuffle:
		return shuffleHold
	default:
		return 0
	}
}

func longestFall(falls []engine.Fall) int {
	longest := 0
	for _, f := range falls {
		longest = max(longest, f.Distance())
	}
	return longest
}

// startPlayback converts the phase events collected during a swap into
// frames. Phases configured with zero duration are dropped.
func (g *Game) startPlayback() {
	for _, ev := range g.pending {
		if ev.Phase == engine.PhaseShuffle {
			g.banner = "No moves left - shuffling"
			g.bannerTicks = g.rt.TicksFor(bannerDuration)
		}
		if t := g.rt.TicksFor(g.frameDuration(ev)); t > 0 {
			g.frames = append(g.frames, frame{event: ev, ticks: t})
		}
	}
	g.pending = nil
	g.frameTick = 0
}

// advancePlayback moves playback forward one tick.
// Returns true if frames remain to be shown.
func (g *Game) advancePlayback() bool {
	if len(g.frames) == 0 {
		return false
	}
	g.frameTick++
	if g.frameTick >= g.frames[0].ticks {
		g.frames = g.frames[1:]
		g.frameTick = 0
	}
	return len(g.frames) > 0
}

// Animating reports whether a resolution is being played back. Input is
// ignored until it finishes.
func (g *Game) Animating() bool {
	return len(g.frames) > 0
}

// currentFrame returns the frame on screen and its progress in [0, 1).
func (g *Game) currentFrame() (frame, float64, bool) {
	if len(g.frames) == 0 {
		return frame{}, 0, false
	}
	f := g.frames[0]
	return f, float64(g.frameTick) / float64(f.ticks), true
}

// easeOutQuad provides smooth deceleration for falling tokens.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// fallRow returns the row a falling token is drawn at for the given progress.
// Rows above the board are negative.
func fallRow(f engine.Fall, progress float64) int {
	t := easeOutQuad(progress)
	return f.From.Row + int(float64(f.Distance())*t+0.5)
}
