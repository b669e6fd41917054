package engine

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestNewProducesSettledBoard(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		e, err := New(DefaultConfig(rand.New(rand.NewSource(seed))))
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}
		snap := e.Snapshot()
		if err := checkSettled(snap.Board, 3); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if snap.Board.Rows() != 10 || snap.Board.Cols() != 8 {
			t.Fatalf("board is %dx%d, want 10x8", snap.Board.Rows(), snap.Board.Cols())
		}
		if snap.State != StateIdle || snap.Score != 0 {
			t.Fatalf("fresh engine state=%s score=%d", snap.State, snap.Score)
		}
		if len(e.Moves()) == 0 {
			t.Fatalf("seed %d: starting board has no move", seed)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"too few rows", func(c *Config) { c.Rows = 2 }},
		{"too few cols", func(c *Config) { c.Cols = 0 }},
		{"two colors", func(c *Config) { c.Palette = []Color{ColorRed, ColorBlue} }},
		{"repeated color", func(c *Config) { c.Palette = []Color{ColorRed, ColorBlue, ColorRed} }},
		{"unknown color", func(c *Config) { c.Palette = []Color{ColorRed, ColorBlue, Color(42)} }},
		{"thresholds out of order", func(c *Config) { c.Thresholds = Thresholds{Match: 3, Striped: 5, Rainbow: 4} }},
		{"negative score", func(c *Config) { c.Scores.Bomb = -1 }},
		{"missing rand", func(c *Config) { c.Rand = nil }},
		{"board size mismatch", func(c *Config) { c.Board = pattern(6, 6) }},
		{"board with vacancy", func(c *Config) {
			c.Board = pattern(10, 8)
			c.Board.Clear(P(4, 4))
		}},
		{"board with run", func(c *Config) {
			c.Board = pattern(10, 8)
			for col := range 3 {
				c.Board.Set(P(0, col), Plain(ColorRed))
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(rng)
			tt.mutate(&cfg)
			_, err := New(cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigDefaultsFillZeroValues(t *testing.T) {
	e, err := New(Config{Rows: 6, Cols: 6, Rand: rand.New(rand.NewSource(4))})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	cfg := e.Config()
	if len(cfg.Palette) != 4 || cfg.Thresholds != DefaultThresholds() || cfg.Scores != DefaultScoreTable() {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestConfigBoardIsCopied(t *testing.T) {
	board := pattern(6, 6)
	cfg := DefaultConfig(rand.New(rand.NewSource(1)))
	cfg.Rows, cfg.Cols = 6, 6
	cfg.Board = board

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if !e.Snapshot().Board.Equal(board) {
		t.Fatal("engine should start from the given board")
	}
	board.Set(P(0, 0), Rainbow())
	if tok, _ := e.Snapshot().At(P(0, 0)); tok.IsRainbow() {
		t.Error("mutating the config board leaked into the engine")
	}
}

func TestSelectionStateMachine(t *testing.T) {
	e := newTestEngine(t, pattern(6, 6), 1, Hooks{})

	res, err := e.Select(P(2, 2))
	if err != nil || res.Outcome != OutcomeSelected || res.Snapshot.State != StateOneSelected {
		t.Fatalf("first select = %s/%v state=%s", res.Outcome, err, res.Snapshot.State)
	}
	if p, ok := e.Selected(); !ok || p != P(2, 2) {
		t.Errorf("Selected() = %s,%v", p, ok)
	}

	res, _ = e.Select(P(2, 2))
	if res.Outcome != OutcomeDeselected || e.State() != StateIdle {
		t.Errorf("reselect = %s state=%s, want deselected/idle", res.Outcome, e.State())
	}

	e.Select(P(0, 0))
	res, _ = e.Select(P(4, 4))
	if res.Outcome != OutcomeSelected || !res.Snapshot.HasSelected || res.Snapshot.Selected != P(4, 4) {
		t.Errorf("non-adjacent select = %s sel=%s, want selection moved", res.Outcome, res.Snapshot.Selected)
	}

	res, err = e.Select(P(9, 9))
	if !errors.Is(err, ErrOutOfBounds) || res.Outcome != OutcomeRejected {
		t.Errorf("out of bounds = %s/%v", res.Outcome, err)
	}
	if p, ok := e.Selected(); !ok || p != P(4, 4) {
		t.Error("out of bounds select changed the selection")
	}

	// Pattern boards are stuck, so an adjacent pick reverts.
	res, err = e.Select(P(4, 5))
	if err != nil || res.Outcome != OutcomeReverted {
		t.Errorf("adjacent select = %s/%v, want reverted", res.Outcome, err)
	}
	if e.State() != StateIdle {
		t.Errorf("state after revert = %s, want idle", e.State())
	}
}

func TestSwapNonAdjacentReselects(t *testing.T) {
	e := newTestEngine(t, pattern(5, 5), 1, Hooks{})
	res, err := e.Swap(P(0, 0), P(2, 2))
	if err != nil || res.Outcome != OutcomeSelected {
		t.Fatalf("Swap() = %s/%v, want selected", res.Outcome, err)
	}
	if p, ok := e.Selected(); !ok || p != P(2, 2) {
		t.Errorf("Selected() = %s,%v, want (2,2)", p, ok)
	}

	if _, err := e.Swap(P(0, 0), P(0, 5)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("out of bounds swap error = %v", err)
	}
}

func TestInvalidSwapIsReverted(t *testing.T) {
	rec := &recorder{}
	g := pattern(6, 6)
	before := g.Clone()
	e := newTestEngine(t, g, 1, rec.hooks())

	res, err := e.Swap(P(0, 0), P(0, 1))
	if err != nil {
		t.Fatalf("Swap() error: %v", err)
	}
	if res.Outcome != OutcomeReverted || res.Kind != SwapInvalid {
		t.Errorf("outcome = %s/%s, want reverted/invalid", res.Outcome, res.Kind)
	}
	if !res.Snapshot.Board.Equal(before) {
		t.Errorf("board changed after revert:\n%s", res.Snapshot.Board)
	}
	if res.Snapshot.Score != 0 || len(rec.points) != 0 {
		t.Error("a reverted swap must not score")
	}
	if len(rec.events) != 2 || rec.events[0].Phase != PhaseSwap || rec.events[1].Phase != PhaseRevert {
		t.Errorf("phases = %v, want swap then revert", phases(rec.events))
	}
	if res.Snapshot.Swaps != 0 {
		t.Errorf("reverted swap counted: %d", res.Snapshot.Swaps)
	}
}

func TestFiveRunMakesRainbow(t *testing.T) {
	rec := &recorder{}
	g := fixture(t,
		"RRYRR",
		"BGRGB",
		"GBGBG",
		"BGBGB",
		"GBGBG",
	)
	e := newTestEngine(t, g, 9, rec.hooks())

	e.Select(P(0, 2))
	res, err := e.Select(P(1, 2))
	if err != nil || res.Outcome != OutcomeResolved || res.Kind != SwapMatch {
		t.Fatalf("swap = %s/%s/%v", res.Outcome, res.Kind, err)
	}

	mark := rec.first(t, PhaseMark)
	if len(mark.Scores) != 1 || mark.Scores[0].Kind != ScoreRainbow || mark.Scores[0].Points != 1000 {
		t.Errorf("first pass scores = %+v, want one rainbow award", mark.Scores)
	}
	if len(rec.points) == 0 || rec.points[0] != 1000 || rec.totals[0] != 1000 {
		t.Errorf("OnScoreChanged calls = %v/%v, want (1000, 1000) first", rec.points, rec.totals)
	}

	sweep := rec.first(t, PhaseSweep)
	if len(sweep.Cells) != 4 {
		t.Errorf("removed %v, want 4 cells", sweep.Cells)
	}
	tok, ok := sweep.Board.Get(P(0, 2))
	if !ok || !tok.IsRainbow() || tok.Color != ColorNone {
		t.Errorf("midpoint = %+v,%v, want colorless rainbow", tok, ok)
	}
	for _, c := range []int{0, 1, 3, 4} {
		if _, ok := sweep.Board.Get(P(0, c)); ok {
			t.Errorf("cell (0,%d) should be vacant after sweep", c)
		}
	}

	if err := checkSettled(res.Snapshot.Board, 3); err != nil {
		t.Error(err)
	}
	if res.Snapshot.State != StateIdle || res.Points < 1000 {
		t.Errorf("after resolve state=%s points=%d", res.Snapshot.State, res.Points)
	}
}

func TestFourRunMakesPerpendicularStriped(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		a, b   Pos
		center Pos
		want   Special
	}{
		{
			name: "horizontal run",
			rows: []string{
				"RRYRB",
				"BGRGY",
				"GBGBG",
				"BGBGB",
				"GBGBG",
			},
			a:      P(0, 2),
			b:      P(1, 2),
			center: P(0, 1),
			want:   SpecialStripedColumn,
		},
		{
			name: "vertical run",
			rows: []string{
				"RBGB",
				"RGBG",
				"YRGB",
				"RBGB",
				"BGBG",
			},
			a:      P(2, 0),
			b:      P(2, 1),
			center: P(1, 0),
			want:   SpecialStripedRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			e := newTestEngine(t, fixture(t, tt.rows...), 3, rec.hooks())

			res, err := e.Swap(tt.a, tt.b)
			if err != nil || res.Outcome != OutcomeResolved {
				t.Fatalf("swap = %s/%v", res.Outcome, err)
			}

			mark := rec.first(t, PhaseMark)
			if len(mark.Scores) != 1 || mark.Scores[0].Kind != ScoreStriped {
				t.Errorf("first pass scores = %+v, want one striped award", mark.Scores)
			}

			sweep := rec.first(t, PhaseSweep)
			if len(sweep.Cells) != 3 {
				t.Errorf("removed %v, want 3", sweep.Cells)
			}
			specials := 0
			for _, p := range sweep.Board.Positions() {
				if tok, ok := sweep.Board.Get(p); ok && tok.IsSpecial() {
					specials++
				}
			}
			if specials != 1 {
				t.Errorf("specials after sweep = %d, want 1", specials)
			}
			if tok, _ := sweep.Board.Get(tt.center); tok.Special != tt.want || tok.Color != ColorRed {
				t.Errorf("center = %+v, want red %s", tok, tt.want)
			}
		})
	}
}

func TestIntersectionMakesBomb(t *testing.T) {
	rec := &recorder{}
	g := fixture(t,
		"RBGBG",
		"RGBGB",
		"YRRBG",
		"RGBGB",
		"GBGBG",
	)
	e := newTestEngine(t, g, 5, rec.hooks())

	// Red moves up into (2,0), closing column 0 and row 2 at once.
	res, err := e.Swap(P(2, 0), P(3, 0))
	if err != nil || res.Outcome != OutcomeResolved {
		t.Fatalf("swap = %s/%v", res.Outcome, err)
	}

	mark := rec.first(t, PhaseMark)
	kinds := map[ScoreKind]int{}
	for _, s := range mark.Scores {
		kinds[s.Kind]++
	}
	if kinds[ScoreMatch] != 2 || kinds[ScoreBomb] != 1 || len(mark.Scores) != 3 {
		t.Errorf("first pass scores = %+v, want two matches and one bomb", mark.Scores)
	}

	sweep := rec.first(t, PhaseSweep)
	if len(sweep.Cells) != 4 {
		t.Errorf("removed %v, want 4", sweep.Cells)
	}
	if tok, _ := sweep.Board.Get(P(2, 0)); tok.Special != SpecialBomb || tok.Color != ColorRed {
		t.Errorf("intersection = %+v, want red bomb", tok)
	}
}

func TestDoubleBombSwap(t *testing.T) {
	rec := &recorder{}
	g := pattern(7, 7)
	for _, p := range []Pos{P(3, 3), P(3, 4)} {
		tok, _ := g.Get(p)
		g.Set(p, Token{Color: tok.Color, Special: SpecialBomb})
	}
	e := newTestEngine(t, g, 2, rec.hooks())

	res, err := e.Swap(P(3, 3), P(3, 4))
	if err != nil || res.Kind != SwapCombo {
		t.Fatalf("swap = %s/%v", res.Kind, err)
	}

	mark := rec.first(t, PhaseMark)
	if mark.Combo != ComboDoubleBomb {
		t.Errorf("combo = %s, want double bomb", mark.Combo)
	}
	marked := posSet(mark.Cells)
	for _, p := range g.Positions() {
		if want := p.Chebyshev(P(3, 3)) <= 2; marked[p] != want {
			t.Errorf("cell %s marked = %v, want %v", p, marked[p], want)
		}
	}
	if len(mark.Scores) != 0 {
		t.Errorf("combo must not award creation points, got %+v", mark.Scores)
	}
	if sweep := rec.first(t, PhaseSweep); len(sweep.Cells) != 25 {
		t.Errorf("removed %d, want 25", len(sweep.Cells))
	}
}

func TestStripedWithPlainClearsRow(t *testing.T) {
	rec := &recorder{}
	g := pattern(6, 6)
	tok, _ := g.Get(P(2, 2))
	g.Set(P(2, 2), Token{Color: tok.Color, Special: SpecialStripedRow})
	e := newTestEngine(t, g, 2, rec.hooks())

	res, err := e.Swap(P(2, 2), P(2, 3))
	if err != nil || res.Kind != SwapDetonate {
		t.Fatalf("swap = %s/%v, want detonate", res.Kind, err)
	}

	mark := rec.first(t, PhaseMark)
	marked := posSet(mark.Cells)
	for _, p := range g.Positions() {
		if want := p.Row == 2; marked[p] != want {
			t.Errorf("cell %s marked = %v, want %v", p, marked[p], want)
		}
	}
	if len(mark.Scores) != 0 {
		t.Errorf("detonation must not score, got %+v", mark.Scores)
	}
}

func TestDoubleRainbowClearsBoard(t *testing.T) {
	rec := &recorder{}
	g := pattern(5, 5)
	g.Set(P(1, 1), Rainbow())
	g.Set(P(1, 2), Rainbow())
	e := newTestEngine(t, g, 2, rec.hooks())

	res, err := e.Swap(P(1, 1), P(1, 2))
	if err != nil || res.Kind != SwapCombo || res.Combo != ComboDoubleRainbow {
		t.Fatalf("swap = %s/%v", res.Kind, err)
	}

	mark := rec.first(t, PhaseMark)
	if len(mark.Cells) != 25 {
		t.Errorf("marked %d cells, want the whole board", len(mark.Cells))
	}
	if err := checkSettled(res.Snapshot.Board, 3); err != nil {
		t.Error(err)
	}
}

func TestRainbowMoveClearsPartnerColor(t *testing.T) {
	rec := &recorder{}
	g := pattern(5, 5)
	g.Set(P(1, 1), Rainbow())
	e := newTestEngine(t, g, 2, rec.hooks())

	// The yellow token at (1,2) trades places with the rainbow.
	res, err := e.Swap(P(1, 1), P(1, 2))
	if err != nil || res.Kind != SwapRainbow {
		t.Fatalf("swap = %s/%v, want rainbow", res.Kind, err)
	}

	mark := rec.first(t, PhaseMark)
	want := posSet([]Pos{P(1, 0), P(1, 1), P(1, 2), P(1, 4), P(3, 1), P(3, 3)})
	got := posSet(mark.Cells)
	if len(got) != len(want) {
		t.Errorf("marked %v, want %v", mark.Cells, want)
	}
	for p := range want {
		if !got[p] {
			t.Errorf("cell %s should be marked", p)
		}
	}
	if len(mark.Scores) != 0 {
		t.Errorf("rainbow move must not score, got %+v", mark.Scores)
	}
}

func TestComboCentersOnSecondNamedToken(t *testing.T) {
	rec := &recorder{}
	g := pattern(8, 8)
	for _, p := range []Pos{P(4, 3), P(4, 4)} {
		tok, _ := g.Get(p)
		g.Set(p, Token{Color: tok.Color, Special: SpecialBomb})
	}
	e := newTestEngine(t, g, 2, rec.hooks())

	// The second-named token starts at (4,4) and ends at (4,3).
	e.Select(P(4, 3))
	e.Select(P(4, 4))

	marked := posSet(rec.first(t, PhaseMark).Cells)
	if !marked[P(4, 1)] || marked[P(4, 6)] {
		t.Errorf("blast should center on (4,3): (4,1)=%v (4,6)=%v", marked[P(4, 1)], marked[P(4, 6)])
	}
}

func TestLockedDuringPace(t *testing.T) {
	g := fixture(t,
		"RRYRB",
		"BGRGY",
		"GBGBG",
		"BGBGB",
		"GBGBG",
	)
	var (
		e         *Engine
		lockedErr error
		seenState State
	)
	hooks := Hooks{
		Pace: func(p Phase) {
			if p != PhaseMark || lockedErr != nil {
				return
			}
			_, lockedErr = e.Select(P(4, 4))
			seenState = e.Snapshot().State
		},
	}
	e = newTestEngine(t, g, 3, hooks)

	res, err := e.Swap(P(0, 2), P(1, 2))
	if err != nil || res.Outcome != OutcomeResolved {
		t.Fatalf("swap = %s/%v", res.Outcome, err)
	}
	if !errors.Is(lockedErr, ErrEngineLocked) {
		t.Errorf("input during resolve error = %v, want ErrEngineLocked", lockedErr)
	}
	if seenState != StateResolving {
		t.Errorf("state during pace = %s, want resolving", seenState)
	}
	if _, ok := e.Selected(); ok {
		t.Error("locked input must not change the selection")
	}
}

func TestEndSession(t *testing.T) {
	e := newTestEngine(t, pattern(5, 5), 1, Hooks{})
	e.Select(P(0, 0))
	e.EndSession()

	if e.State() != StateGameOver {
		t.Fatalf("state = %s, want game over", e.State())
	}
	for _, call := range []func() (Result, error){
		func() (Result, error) { return e.Select(P(1, 1)) },
		func() (Result, error) { return e.Swap(P(1, 1), P(1, 2)) },
	} {
		res, err := call()
		if !errors.Is(err, ErrEngineLocked) || res.Outcome != OutcomeIgnored {
			t.Errorf("input after end = %s/%v", res.Outcome, err)
		}
	}
	if _, ok := e.Hint(); ok {
		t.Error("Hint() should report nothing after the session ended")
	}
}

func TestEndSessionDuringResolveRunsToSettlement(t *testing.T) {
	g := fixture(t,
		"RRYRR",
		"BGRGB",
		"GBGBG",
		"BGBGB",
		"GBGBG",
	)
	var e *Engine
	hooks := Hooks{Pace: func(p Phase) {
		if p == PhaseSwap {
			e.EndSession()
		}
	}}
	e = newTestEngine(t, g, 8, hooks)

	res, err := e.Swap(P(0, 2), P(1, 2))
	if err != nil || res.Outcome != OutcomeResolved {
		t.Fatalf("swap = %s/%v", res.Outcome, err)
	}
	if res.Snapshot.State != StateGameOver {
		t.Errorf("state = %s, want game over", res.Snapshot.State)
	}
	if err := checkSettled(res.Snapshot.Board, 3); err != nil {
		t.Error(err)
	}
}

func TestRandomPlayStaysSettled(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		cfg := DefaultConfig(rand.New(rand.NewSource(seed)))
		var totals []int
		cfg.Hooks.OnScoreChanged = func(_, total int) { totals = append(totals, total) }
		e, err := New(cfg)
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}

		for i := 0; i < 60; i++ {
			m, ok := e.Hint()
			if !ok {
				t.Fatalf("seed %d move %d: no hint on a reshuffling engine", seed, i)
			}
			res, err := e.Swap(m.A, m.B)
			if err != nil || res.Outcome != OutcomeResolved {
				t.Fatalf("seed %d move %d: hinted swap %s-%s = %s/%v", seed, i, m.A, m.B, res.Outcome, err)
			}
			if err := checkSettled(res.Snapshot.Board, 3); err != nil {
				t.Fatalf("seed %d move %d: %v", seed, i, err)
			}
			if res.Snapshot.State != StateIdle {
				t.Fatalf("seed %d move %d: state %s", seed, i, res.Snapshot.State)
			}
		}

		for i := 1; i < len(totals); i++ {
			if totals[i] < totals[i-1] {
				t.Fatalf("seed %d: score went down %v", seed, totals)
			}
		}
		if snap := e.Snapshot(); snap.Swaps != 60 || snap.BestChain < 1 {
			t.Errorf("seed %d: swaps=%d bestChain=%d", seed, snap.Swaps, snap.BestChain)
		}
	}
}

func TestPacingDoesNotChangeOutcome(t *testing.T) {
	play := func(pace func(Phase)) Snapshot {
		cfg := DefaultConfig(rand.New(rand.NewSource(11)))
		cfg.Hooks.Pace = pace
		e, err := New(cfg)
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}
		for i := 0; i < 20; i++ {
			m, ok := e.Hint()
			if !ok {
				t.Fatal("no hint")
			}
			e.Swap(m.A, m.B)
		}
		return e.Snapshot()
	}

	plain := play(nil)
	paced := play(DelayPacer(map[Phase]time.Duration{PhaseMark: 0, PhaseRefill: time.Microsecond}))

	if !plain.Board.Equal(paced.Board) || plain.Score != paced.Score {
		t.Errorf("pacing changed the outcome: score %d vs %d", plain.Score, paced.Score)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newTestEngine(t, pattern(4, 4), 1, Hooks{})
	snap := e.Snapshot()
	snap.Board.Clear(P(0, 0))

	if _, ok := e.Snapshot().At(P(0, 0)); !ok {
		t.Error("mutating a snapshot reached the engine")
	}
}

func phases(events []PhaseEvent) []Phase {
	out := make([]Phase, len(events))
	for i, ev := range events {
		out[i] = ev.Phase
	}
	return out
}
