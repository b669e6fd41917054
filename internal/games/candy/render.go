package candy

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/candy-arcade/internal/core"
	"github.com/vovakirdan/candy-arcade/internal/games/candy/engine"
)

const (
	cellWidth    = 3 // Bracket, glyph, bracket
	hudHeight    = 3
	footerHeight = 2
	minHUDWidth  = 36
)

// rainbowCycle colors a rainbow token, one step every few ticks.
var rainbowCycle = []core.Color{
	core.ColorRed,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorCyan,
	core.ColorBlue,
	core.ColorMagenta,
}

// cellStyle carries per-cell highlights for one render.
type cellStyle struct {
	cursor   bool
	selected bool
	hint     bool
	marked   bool
	swapped  bool
	dim      bool
}

// boardBox returns the outer rectangle of the board, border included.
func (g *Game) boardBox() core.Rect {
	w := g.cfg.Board.Cols*cellWidth + 2
	h := g.cfg.Board.Rows + 2
	return core.NewRect((g.screenW-w)/2, hudHeight, w, h)
}

// boardInner returns the area holding the cells.
func (g *Game) boardInner() core.Rect {
	box := g.boardBox()
	return core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2)
}

// CellAt maps a screen position to a board cell.
func (g *Game) CellAt(x, y int) (engine.Pos, bool) {
	col, row, ok := g.boardInner().GridCell(x, y, cellWidth, 1)
	if !ok {
		return engine.Pos{}, false
	}
	return engine.P(row, col), true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.err != nil {
		g.renderError(dst)
		return
	}

	box := g.boardBox()
	g.renderHUD(dst, box)
	g.renderBoard(dst, box)
	g.renderFooter(dst, box)
	g.renderOverlays(dst, box)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	box := g.boardBox()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", max(box.W, minHUDWidth), hudHeight+box.H+footerHeight))
}

func (g *Game) renderError(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Cannot start game")
	msg := g.err.Error()
	if len(msg) > g.screenW-2 && g.screenW > 5 {
		msg = msg[:g.screenW-5] + "..."
	}
	dst.DrawTextCentered(y, msg)
	dst.DrawTextCentered(y+1, "Check your candy config file")
}

// renderHUD draws title, score, clock and the banner line.
func (g *Game) renderHUD(dst *core.Screen, box core.Rect) {
	width := max(box.W, minHUDWidth)
	left := (g.screenW - width) / 2
	right := left + width

	title := strings.ToUpper(g.Title())
	dst.DrawTextColored(left+(width-len(title))/2, 0, title, core.ColorBrightMagenta)

	snap := g.eng.Snapshot()
	score := fmt.Sprintf("Score: %d", snap.Score)
	dst.DrawText(left, 1, score)
	if g.gainTicks > 0 && g.gain > 0 {
		dst.DrawTextColored(left+len(score)+1, 1, fmt.Sprintf("+%d", g.gain), core.ColorBrightGreen)
	}

	var info string
	infoColor := core.ColorDefault
	if g.timed {
		secs := int((g.TimeLeft() + time.Second - 1) / time.Second)
		info = fmt.Sprintf("Time %d:%02d", secs/60, secs%60)
		if secs <= 10 {
			infoColor = core.ColorBrightRed
		}
	} else {
		info = fmt.Sprintf("Swaps: %d", snap.Swaps)
	}
	dst.DrawTextColored(right-len(info), 1, info, infoColor)

	line := "Timed"
	lineColor := core.ColorGray
	if g.mode == ModeEndless || !g.timed {
		line = "Endless"
	}
	if g.bannerTicks > 0 && g.banner != "" {
		line = g.banner
		lineColor = core.ColorBrightYellow
	}
	dst.DrawTextColored(left+(width-len(line))/2, 2, line, lineColor)
}

// renderBoard draws the border and every cell, using the current playback
// frame when a resolution is being shown.
func (g *Game) renderBoard(dst *core.Screen, box core.Rect) {
	dst.DrawBoxColored(box, core.ColorGray)
	inner := g.boardInner()

	f, progress, animating := g.currentFrame()
	styles := make(map[engine.Pos]cellStyle)
	var board *engine.Grid
	var falls []engine.Fall
	falling := make(map[engine.Pos]bool)

	if animating {
		ev := f.event
		board = ev.Board
		switch ev.Phase {
		case engine.PhaseSwap, engine.PhaseRevert:
			for _, p := range ev.Swap {
				styles[p] = cellStyle{swapped: true}
			}
		case engine.PhaseMark:
			for _, p := range ev.Cells {
				styles[p] = cellStyle{marked: true}
			}
		case engine.PhaseRefill:
			falls = ev.Falls
			for _, fl := range falls {
				falling[fl.To] = true
			}
		case engine.PhaseShuffle:
			for _, p := range board.Positions() {
				styles[p] = cellStyle{dim: progress < 0.5}
			}
		}
	} else {
		snap := g.eng.Snapshot()
		board = snap.Board
		if g.hintTicks > 0 {
			g.addStyle(styles, g.hint.A, func(s *cellStyle) { s.hint = true })
			g.addStyle(styles, g.hint.B, func(s *cellStyle) { s.hint = true })
		}
		if snap.HasSelected {
			g.addStyle(styles, snap.Selected, func(s *cellStyle) { s.selected = true })
		}
		if !g.gameOver {
			g.addStyle(styles, g.cursor, func(s *cellStyle) { s.cursor = true })
		}
	}

	for _, p := range board.Positions() {
		if falling[p] {
			continue
		}
		tok, filled := board.Get(p)
		g.drawCell(dst, inner, p, tok, filled, styles[p])
	}
	for _, fl := range falls {
		row := fallRow(fl, progress)
		if row < 0 {
			continue
		}
		g.drawCell(dst, inner, engine.P(row, fl.To.Col), fl.Token, true, cellStyle{})
	}
}

func (g *Game) addStyle(styles map[engine.Pos]cellStyle, p engine.Pos, set func(*cellStyle)) {
	s := styles[p]
	set(&s)
	styles[p] = s
}

// tokenGlyph returns the rune and color for a token.
func (g *Game) tokenGlyph(tok engine.Token) (rune, core.Color) {
	color := ScreenColor(tok.Color)
	switch tok.Special {
	case engine.SpecialStripedRow:
		return '═', color
	case engine.SpecialStripedColumn:
		return '║', color
	case engine.SpecialBomb:
		return '◆', color
	case engine.SpecialRainbow:
		return '✦', rainbowCycle[int(g.tick/8)%len(rainbowCycle)]
	default:
		return '●', color
	}
}

func (g *Game) drawCell(dst *core.Screen, inner core.Rect, p engine.Pos, tok engine.Token, filled bool, st cellStyle) {
	x := inner.X + p.Col*cellWidth
	y := inner.Y + p.Row

	glyph, color := ' ', core.ColorDefault
	if filled {
		glyph, color = g.tokenGlyph(tok)
	}

	switch {
	case st.marked:
		glyph, color = '✸', color.Bright()
	case st.dim:
		color = core.ColorGray
	case st.swapped:
		color = color.Bright()
	}

	left, right := ' ', ' '
	frameColor := core.ColorWhite
	switch {
	case st.selected:
		left, right = '<', '>'
		color = color.Bright()
		frameColor = core.ColorBrightWhite
	case st.hint && (g.tick/15)%2 == 0:
		left, right = '(', ')'
		frameColor = core.ColorBrightCyan
	case st.cursor:
		left, right = '[', ']'
	}

	dst.SetColored(x, y, left, frameColor)
	dst.SetColored(x+1, y, glyph, color)
	dst.SetColored(x+2, y, right, frameColor)
}

// renderFooter draws session counters and the key summary under the board.
func (g *Game) renderFooter(dst *core.Screen, box core.Rect) {
	snap := g.eng.Snapshot()
	stats := fmt.Sprintf("Best chain %d  Specials %d  Shuffles %d", snap.BestChain, snap.Specials, snap.Shuffles)
	dst.DrawTextColored((g.screenW-len(stats))/2, box.Bottom(), stats, core.ColorGray)

	keys := "Arrows: move  Enter: pick  H: hint  P: pause  Q: quit"
	dst.DrawTextColored((g.screenW-len(keys))/2, box.Bottom()+1, keys, core.ColorGray)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, box core.Rect) {
	centerX, centerY := box.Center()

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.gameOver {
		heading := "GAME OVER"
		if g.endReason == EndTimeout {
			heading = "TIME UP!"
		}
		snap := g.eng.Snapshot()
		g.drawOverlay(dst, centerX, centerY,
			heading,
			fmt.Sprintf("Score: %d", snap.Score),
			fmt.Sprintf("Best chain: %d", snap.BestChain),
			"Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	r := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(r, ' ')
	dst.DrawBoxColored(r, core.ColorBrightWhite)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, r.Y+1+i, line)
	}
}

// comboTitle returns the banner text for a combo.
func comboTitle(c engine.Combo) string {
	switch c {
	case engine.ComboDoubleRainbow:
		return "DOUBLE RAINBOW!"
	case engine.ComboRainbowSpecial:
		return "Rainbow combo!"
	case engine.ComboDoubleBomb:
		return "Double bomb!"
	case engine.ComboCrossClear:
		return "Cross clear!"
	case engine.ComboStripedBomb:
		return "Mega stripes!"
	default:
		return ""
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Enter/Space/Click: Pick | H: Hint | P: Pause | R: Restart | Q: Quit"
}
