package engine

import (
	"fmt"
	"sync"
)

// Config enumerates everything the engine needs. Rand is required; zero
// Thresholds, Scores or Palette fall back to the defaults.
type Config struct {
	Rows       int
	Cols       int
	Palette    []Color
	Thresholds Thresholds
	Scores     ScoreTable
	Rand       Rand
	Hooks      Hooks

	// Reshuffle regenerates a settled board that has no accepted swap left.
	Reshuffle bool

	// Board, when set, is copied as the starting board instead of generating
	// one. It must match Rows and Cols, be fully occupied and hold no run.
	Board *Grid
}

// DefaultConfig returns the classic 10×8 four-color setup.
func DefaultConfig(rng Rand) Config {
	return Config{
		Rows:       10,
		Cols:       8,
		Palette:    DefaultPalette(),
		Thresholds: DefaultThresholds(),
		Scores:     DefaultScoreTable(),
		Rand:       rng,
		Reshuffle:  true,
	}
}

func (c Config) withDefaults() Config {
	if len(c.Palette) == 0 {
		c.Palette = DefaultPalette()
	}
	if c.Thresholds == (Thresholds{}) {
		c.Thresholds = DefaultThresholds()
	}
	if c.Scores == (ScoreTable{}) {
		c.Scores = DefaultScoreTable()
	}
	return c
}

// Validate checks dimensions, palette, thresholds and scores.
func (c Config) Validate() error {
	if c.Rows < 3 || c.Cols < 3 {
		return fmt.Errorf("engine: grid %dx%d smaller than 3x3: %w", c.Rows, c.Cols, ErrInvalidConfig)
	}
	if len(c.Palette) < 3 {
		return fmt.Errorf("engine: palette needs at least 3 colors, got %d: %w", len(c.Palette), ErrInvalidConfig)
	}
	seen := make(map[Color]bool, len(c.Palette))
	for _, color := range c.Palette {
		if !color.Valid() {
			return fmt.Errorf("engine: palette color %d unknown: %w", color, ErrInvalidConfig)
		}
		if seen[color] {
			return fmt.Errorf("engine: palette color %s repeated: %w", color, ErrInvalidConfig)
		}
		seen[color] = true
	}
	if !c.Thresholds.Valid() {
		return fmt.Errorf("engine: thresholds %d/%d/%d not increasing from 3: %w",
			c.Thresholds.Match, c.Thresholds.Striped, c.Thresholds.Rainbow, ErrInvalidConfig)
	}
	s := c.Scores
	if s.Match < 0 || s.Striped < 0 || s.Rainbow < 0 || s.Bomb < 0 {
		return fmt.Errorf("engine: negative score value: %w", ErrInvalidConfig)
	}
	if c.Rand == nil {
		return fmt.Errorf("engine: random source is required: %w", ErrInvalidConfig)
	}
	if b := c.Board; b != nil {
		if b.Rows() != c.Rows || b.Cols() != c.Cols {
			return fmt.Errorf("engine: board is %dx%d, want %dx%d: %w", b.Rows(), b.Cols(), c.Rows, c.Cols, ErrInvalidConfig)
		}
		if err := checkSettled(b, c.Thresholds.Match); err != nil {
			return fmt.Errorf("engine: starting board: %v: %w", err, ErrInvalidConfig)
		}
	}
	return nil
}

// Outcome classifies the result of a Select or Swap call.
type Outcome uint8

const (
	OutcomeIgnored    Outcome = iota // Engine locked, nothing changed
	OutcomeRejected                  // Out of bounds, nothing changed
	OutcomeSelected                  // Token selected (or selection replaced)
	OutcomeDeselected                // Selection cleared
	OutcomeReverted                  // Swap formed nothing and was undone
	OutcomeResolved                  // Swap accepted and resolved to settlement
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeRejected:
		return "rejected"
	case OutcomeSelected:
		return "selected"
	case OutcomeDeselected:
		return "deselected"
	case OutcomeReverted:
		return "reverted"
	case OutcomeResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Result is returned by Select and Swap.
type Result struct {
	Outcome  Outcome
	Snapshot Snapshot
	Kind     SwapKind // How an attempted swap was classified
	Combo    Combo
	Points   int // Points awarded by this swap
	Chain    int // Resolve passes, 1 when nothing cascaded
	Removed  int // Cells vacated over all passes
	Specials int // Specials created over all passes
}

// Engine is the match-3 state machine. It is safe for concurrent use; at most
// one swap resolves at a time and input received meanwhile is rejected with
// ErrEngineLocked.
type Engine struct {
	mu sync.Mutex

	cfg   Config
	grid  *Grid
	score *ScoreTracker

	state    State
	selected Pos

	swaps     int
	bestChain int
	specials  int
	shuffles  int
}

// New validates cfg and generates a settled starting board.
func New(cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:   cfg,
		score: NewScoreTracker(cfg.Scores, cfg.Hooks.OnScoreChanged),
		state: StateIdle,
	}
	if cfg.Board != nil {
		e.grid = cfg.Board.Clone()
	} else {
		e.grid = e.generate()
	}
	return e, nil
}

// maxGenerateAttempts bounds the search for a starting board with a move.
const maxGenerateAttempts = 100

func (e *Engine) generate() *Grid {
	g := Generate(e.cfg.Rows, e.cfg.Cols, e.cfg.Palette, e.cfg.Rand)
	if !e.cfg.Reshuffle {
		return g
	}
	for i := 1; i < maxGenerateAttempts && !HasMove(g, e.cfg.Thresholds.Match); i++ {
		g = Generate(e.cfg.Rows, e.cfg.Cols, e.cfg.Palette, e.cfg.Rand)
	}
	return g
}

// Select feeds one cell pick into the selection state machine. Picking a cell
// adjacent to the current selection attempts the swap.
func (e *Engine) Select(p Pos) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.locked() {
		return e.result(OutcomeIgnored), ErrEngineLocked
	}
	if !e.grid.InBounds(p) {
		return e.result(OutcomeRejected), ErrOutOfBounds
	}

	switch {
	case e.state == StateIdle:
		return e.selectLocked(p), nil
	case p == e.selected:
		e.state = StateIdle
		return e.result(OutcomeDeselected), nil
	case !p.Adjacent(e.selected):
		return e.selectLocked(p), nil
	default:
		return e.swapLocked(e.selected, p), nil
	}
}

// Swap attempts to exchange the tokens at a and b, regardless of the current
// selection. A non-adjacent pair is treated as selecting b.
func (e *Engine) Swap(a, b Pos) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.locked() {
		return e.result(OutcomeIgnored), ErrEngineLocked
	}
	if !e.grid.InBounds(a) || !e.grid.InBounds(b) {
		return e.result(OutcomeRejected), ErrOutOfBounds
	}
	if !a.Adjacent(b) {
		return e.selectLocked(b), nil
	}
	return e.swapLocked(a, b), nil
}

// EndSession moves the engine to StateGameOver. A resolution in flight still
// runs to settlement.
func (e *Engine) EndSession() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateGameOver
}

// Snapshot returns a copy of the current board and counters.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// State returns the selection state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Score returns the total score.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score.Total()
}

// Selected returns the selected cell, if any.
func (e *Engine) Selected() (Pos, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected, e.state == StateOneSelected
}

// Hint returns the best accepted swap on the current board. It reports false
// while the engine is locked or when no move exists.
func (e *Engine) Hint() (Move, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.locked() {
		return Move{}, false
	}
	return BestMove(e.grid, e.cfg.Thresholds.Match)
}

// Moves lists every accepted swap on the current board.
func (e *Engine) Moves() []Move {
	e.mu.Lock()
	defer e.mu.Unlock()
	return FindMoves(e.grid, e.cfg.Thresholds.Match)
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) locked() bool {
	return e.state == StateResolving || e.state == StateGameOver
}

func (e *Engine) selectLocked(p Pos) Result {
	e.selected = p
	e.state = StateOneSelected
	return e.result(OutcomeSelected)
}

func (e *Engine) result(o Outcome) Result {
	return Result{Outcome: o, Snapshot: e.snapshotLocked()}
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Board:       e.grid.Clone(),
		State:       e.state,
		Score:       e.score.Total(),
		Selected:    e.selected,
		HasSelected: e.state == StateOneSelected,
		Swaps:       e.swaps,
		BestChain:   e.bestChain,
		Specials:    e.specials,
		Shuffles:    e.shuffles,
	}
}
