// Package candy implements the candy match-3 game on top of the resolution
// engine: cursor and mouse selection, a timed session, and playback of the
// engine's resolution frames.
package candy

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/vovakirdan/candy-arcade/internal/config"
	"github.com/vovakirdan/candy-arcade/internal/core"
	"github.com/vovakirdan/candy-arcade/internal/games/candy/engine"
	"github.com/vovakirdan/candy-arcade/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeTimed   Mode = "timed"
	ModeEndless Mode = "endless"
)

// End reasons recorded with a session.
const (
	EndTimeout = "timeout"
	EndQuit    = "quit"
)

const (
	hintDuration   = 2 * time.Second
	bannerDuration = 1500 * time.Millisecond
	gainDuration   = 800 * time.Millisecond
)

// Game implements the candy match-3 game.
type Game struct {
	mode Mode
	cfg  config.CandyConfig
	rt   core.RuntimeConfig
	eng  *engine.Engine
	err  error // Config problem that prevented the engine from starting
	tick uint64

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	paused   bool
	tooSmall bool
	gameOver bool

	endReason    string
	timed        bool
	clockTicks   int // Ticks left in a timed session
	elapsedTicks int

	cursor    engine.Pos
	hint      engine.Move
	hintTicks int

	// Resolution playback
	pending   []engine.PhaseEvent
	frames    []frame
	frameTick int

	gain        int // Points shown next to the score
	gainTicks   int
	banner      string
	bannerTicks int

	board      *engine.Grid // Fixed starting board, nil to generate
	difficulty config.DifficultyPreset
}

// New creates a timed candy game.
func New() *Game {
	return &Game{mode: ModeTimed}
}

// NewEndless creates a candy game without a session clock.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("candy", func() registry.Game {
		return New()
	})
	registry.Register("candy_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "candy_endless"
	}
	return "candy"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Candy Match (Endless)"
	}
	return "Candy Match"
}

// Reset initializes/restarts the game with the current configuration.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	g.rt = cfg
	g.cfg = g.difficulty.Apply(CurrentConfig())
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.gameOver = false
	g.elapsedTicks = 0
	g.hintTicks = 0
	g.pending = nil
	g.frames = nil
	g.frameTick = 0
	g.gain, g.gainTicks = 0, 0
	g.banner, g.bannerTicks = "", 0

	g.clockTicks = cfg.TicksFor(g.cfg.Session.Duration())
	g.timed = g.mode == ModeTimed && g.clockTicks > 0

	g.eng, g.err = g.newEngine(rand.New(rand.NewSource(cfg.Seed)))
	g.cursor = engine.P(g.cfg.Board.Rows/2, g.cfg.Board.Cols/2)

	g.checkScreenSize()
}

func (g *Game) newEngine(rng *rand.Rand) (*engine.Engine, error) {
	ecfg, err := EngineConfig(g.cfg, rng)
	if err != nil {
		return nil, err
	}
	ecfg.Board = g.board
	ecfg.Hooks = engine.Hooks{
		OnPhase: func(ev engine.PhaseEvent) {
			g.pending = append(g.pending, ev)
		},
		OnScoreChanged: func(points, _ int) {
			g.gain += points
			g.gainTicks = g.rt.TicksFor(gainDuration)
		},
	}
	return engine.New(ecfg)
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	box := g.boardBox()
	g.tooSmall = g.screenW < max(box.W, minHUDWidth) || g.screenH < hudHeight+box.H+footerHeight
}

// SetDifficulty selects the preset applied on top of the current
// configuration from the next Reset.
func (g *Game) SetDifficulty(name string) error {
	p, err := config.ParseDifficulty(name)
	if err != nil {
		return err
	}
	g.difficulty = p
	return nil
}

// Difficulty returns the selected preset.
func (g *Game) Difficulty() config.DifficultyPreset {
	if g.difficulty == "" {
		return config.DifficultyNormal
	}
	return g.difficulty
}

// Resize adapts the layout to a new screen size and keeps the session going.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.rt.ScreenW = width
	g.rt.ScreenH = height
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.err != nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.elapsedTicks++
	g.countDown()
	animating := g.advancePlayback()

	if g.timed {
		g.clockTicks--
		if g.clockTicks <= 0 {
			g.finish(EndTimeout)
			return core.StepResult{State: g.State()}
		}
	}

	// Input is locked while a resolution plays back.
	if !animating {
		g.handleInput(in)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) countDown() {
	if g.hintTicks > 0 {
		g.hintTicks--
	}
	if g.gainTicks > 0 {
		g.gainTicks--
		if g.gainTicks == 0 {
			g.gain = 0
		}
	}
	if g.bannerTicks > 0 {
		g.bannerTicks--
	}
}

func (g *Game) handleInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionDown):
		g.moveCursor(1, 0)
	case in.Has(core.ActionLeft):
		g.moveCursor(0, -1)
	case in.Has(core.ActionRight):
		g.moveCursor(0, 1)
	}

	if in.Has(core.ActionHint) {
		g.showHint()
	}

	if in.Has(core.ActionConfirm) {
		g.pick(g.cursor)
	}

	for _, c := range in.Clicks {
		if g.Animating() {
			break
		}
		if p, ok := g.CellAt(c.X, c.Y); ok {
			g.cursor = p
			g.pick(p)
		}
	}
}

func (g *Game) moveCursor(dr, dc int) {
	g.cursor = engine.P(
		core.Clamp(g.cursor.Row+dr, 0, g.cfg.Board.Rows-1),
		core.Clamp(g.cursor.Col+dc, 0, g.cfg.Board.Cols-1),
	)
}

func (g *Game) showHint() {
	if m, ok := g.eng.Hint(); ok {
		g.hint = m
		g.hintTicks = g.rt.TicksFor(hintDuration)
		g.cursor = m.A
	}
}

// pick feeds a cell into the engine's selection state machine and queues the
// resulting frames for playback.
func (g *Game) pick(p engine.Pos) {
	res, err := g.eng.Select(p)
	if err != nil {
		return
	}
	if res.Outcome == engine.OutcomeResolved {
		g.hintTicks = 0
		g.announce(res)
	}
	g.startPlayback()
}

// announce sets the banner shown after a resolved swap.
func (g *Game) announce(res engine.Result) {
	var msg string
	switch {
	case res.Combo != engine.ComboNone:
		msg = comboTitle(res.Combo)
	case res.Chain > 2:
		msg = "Sweet! Chain x" + strconv.Itoa(res.Chain)
	case res.Chain == 2:
		msg = "Chain x2"
	case res.Specials > 0:
		msg = "Special candy!"
	}
	if msg == "" {
		return
	}
	g.banner = msg
	g.bannerTicks = g.rt.TicksFor(bannerDuration)
}

// finish ends the session and drops any remaining playback.
func (g *Game) finish(reason string) {
	g.eng.EndSession()
	g.gameOver = true
	g.endReason = reason
	g.frames = nil
	g.hintTicks = 0
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.eng != nil {
		score = g.eng.Score()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver || g.err != nil,
		Paused:   g.paused || g.tooSmall,
	}
}

// Session returns statistics for the current session. A session that has not
// run out of time is reported as quit.
func (g *Game) Session() core.SessionStats {
	stats := core.SessionStats{
		Elapsed:   time.Duration(g.elapsedTicks) * time.Second / time.Duration(g.rt.TickRate),
		EndReason: EndQuit,
	}
	if g.gameOver {
		stats.EndReason = g.endReason
	}
	if g.eng == nil {
		return stats
	}
	snap := g.eng.Snapshot()
	stats.Score = snap.Score
	stats.Swaps = snap.Swaps
	stats.BestChain = snap.BestChain
	stats.Specials = snap.Specials
	stats.Shuffles = snap.Shuffles
	return stats
}

// TimeLeft returns the remaining session time; zero for endless games.
func (g *Game) TimeLeft() time.Duration {
	if !g.timed || g.clockTicks <= 0 {
		return 0
	}
	return time.Duration(g.clockTicks) * time.Second / time.Duration(g.rt.TickRate)
}

// Err returns the configuration error that prevented the game from starting.
func (g *Game) Err() error {
	return g.err
}
