package candy

import (
	"testing"

	"github.com/vovakirdan/candy-arcade/internal/config"
	"github.com/vovakirdan/candy-arcade/internal/core"
	"github.com/vovakirdan/candy-arcade/internal/games/candy/engine"
)

// swapBoard has exactly one plain match at the top: swapping (0,2) with
// (0,3) lines up three reds in row 0.
var swapBoard = []string{
	"RRBRG",
	"YGYGY",
	"GBGBR",
	"BYBYG",
	"YGYGB",
}

func fixture(t *testing.T, rows ...string) *engine.Grid {
	t.Helper()
	g := engine.NewGrid(len(rows), len(rows[0]))
	for r, line := range rows {
		for c, ch := range line {
			color, ok := engine.ParseColor(string(ch))
			if !ok {
				t.Fatalf("fixture: bad color %q", ch)
			}
			g.Set(engine.P(r, c), engine.Plain(color))
		}
	}
	return g
}

func testConfig() config.CandyConfig {
	cfg := config.DefaultCandyConfig()
	cfg.Board = config.BoardConfig{Rows: 5, Cols: 5}
	cfg.Rules.Reshuffle = false
	return cfg
}

func useConfig(t *testing.T, cfg config.CandyConfig) {
	t.Helper()
	prev := CurrentConfig()
	SetConfig(cfg)
	t.Cleanup(func() { SetConfig(prev) })
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     7,
	}
}

// newTestGame resets a game of the given mode on the swap fixture.
func newTestGame(t *testing.T, g *Game) *Game {
	t.Helper()
	useConfig(t, testConfig())
	g.board = fixture(t, swapBoard...)
	g.Reset(testRuntime())
	if err := g.Err(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	return g
}

func press(g *Game, actions ...core.Action) {
	for _, a := range actions {
		in := core.NewInputFrame()
		in.Set(a)
		g.Step(in)
	}
}

func idle(g *Game, ticks int) {
	for range ticks {
		g.Step(core.NewInputFrame())
	}
}

// drain steps until playback finishes.
func drain(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; g.Animating(); i++ {
		if i > 1000 {
			t.Fatal("playback did not finish")
		}
		g.Step(core.NewInputFrame())
	}
}

// cellX returns the screen column of a cell's glyph for the test runtime.
func cellX(g *Game, col int) int {
	return g.boardInner().X + col*cellWidth + 1
}

func cellY(g *Game, row int) int {
	return g.boardInner().Y + row
}
