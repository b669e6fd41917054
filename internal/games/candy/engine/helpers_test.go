package engine

import (
	"math/rand"
	"testing"
)

// fixture builds a grid from rows of color letters. '.' leaves a cell vacant.
func fixture(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g := NewGrid(len(rows), len(rows[0]))
	for r, line := range rows {
		if len(line) != g.Cols() {
			t.Fatalf("fixture row %d has %d cells, want %d", r, len(line), g.Cols())
		}
		for c, ch := range line {
			if ch == '.' {
				continue
			}
			color, ok := ParseColor(string(ch))
			if !ok {
				t.Fatalf("fixture row %d col %d: unknown color %q", r, c, ch)
			}
			g.Set(P(r, c), Plain(color))
		}
	}
	return g
}

// pattern fills a grid with palette[(r+2c)%4]: rows alternate two colors and
// columns cycle all four, so no run exists.
func pattern(rows, cols int) *Grid {
	palette := DefaultPalette()
	g := NewGrid(rows, cols)
	for _, p := range g.Positions() {
		g.Set(p, Plain(palette[(p.Row+2*p.Col)%len(palette)]))
	}
	return g
}

// seqRand returns a fixed sequence of values modulo n, wrapping around.
type seqRand struct {
	vals []int
	i    int
}

func (s *seqRand) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

// recorder collects engine hook calls.
type recorder struct {
	events []PhaseEvent
	points []int
	totals []int
}

func (rec *recorder) hooks() Hooks {
	return Hooks{
		OnPhase: func(ev PhaseEvent) { rec.events = append(rec.events, ev) },
		OnScoreChanged: func(points, total int) {
			rec.points = append(rec.points, points)
			rec.totals = append(rec.totals, total)
		},
	}
}

// first returns the first event of the given phase in chain 1.
func (rec *recorder) first(t *testing.T, phase Phase) PhaseEvent {
	t.Helper()
	for _, ev := range rec.events {
		if ev.Phase == phase && ev.Chain <= 1 {
			return ev
		}
	}
	t.Fatalf("no %s event recorded", phase)
	return PhaseEvent{}
}

// newTestEngine wraps a hand-built board in an engine. Reshuffle is off so the
// board after settle is only the result of refill.
func newTestEngine(t *testing.T, g *Grid, seed int64, hooks Hooks) *Engine {
	t.Helper()
	cfg := DefaultConfig(rand.New(rand.NewSource(seed)))
	cfg.Rows = g.Rows()
	cfg.Cols = g.Cols()
	cfg.Hooks = hooks
	cfg.Reshuffle = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &Engine{
		cfg:   cfg,
		grid:  g,
		score: NewScoreTracker(cfg.Scores, hooks.OnScoreChanged),
		state: StateIdle,
	}
}

func posSet(ps []Pos) map[Pos]bool {
	out := make(map[Pos]bool, len(ps))
	for _, p := range ps {
		out[p] = true
	}
	return out
}
