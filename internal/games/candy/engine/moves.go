package engine

// SwapKind classifies a candidate swap on the post-swap board.
type SwapKind uint8

const (
	SwapInvalid   SwapKind = iota // Reverted
	SwapCombo                     // Two specials
	SwapRainbow                   // Rainbow with a non-special partner
	SwapMatch                     // At least one run formed
	SwapDetonate                  // One non-rainbow special with a plain partner
)

// String returns the string representation of a swap kind.
func (k SwapKind) String() string {
	switch k {
	case SwapInvalid:
		return "invalid"
	case SwapCombo:
		return "combo"
	case SwapRainbow:
		return "rainbow"
	case SwapMatch:
		return "match"
	case SwapDetonate:
		return "detonate"
	default:
		return "unknown"
	}
}

// ClassifySwap decides how a swap that has already been applied to g will
// resolve. a and b are the post-swap positions of the two tokens.
func ClassifySwap(g *Grid, a, b Pos, minRun int) SwapKind {
	ta, _ := g.Get(a)
	tb, _ := g.Get(b)

	switch {
	case ta.IsSpecial() && tb.IsSpecial():
		return SwapCombo
	case ta.IsRainbow() || tb.IsRainbow():
		return SwapRainbow
	case HasRun(g, minRun):
		return SwapMatch
	case ta.IsSpecial() || tb.IsSpecial():
		return SwapDetonate
	default:
		return SwapInvalid
	}
}

// Move is an adjacent swap that would be accepted.
type Move struct {
	A, B    Pos
	Kind    SwapKind
	Longest int // Longest run formed, for SwapMatch
}

// weight orders moves for hints: combos first, then rainbows, then longer
// runs, then single detonations.
func (m Move) weight() int {
	switch m.Kind {
	case SwapCombo:
		return 300
	case SwapRainbow:
		return 200
	case SwapMatch:
		return 100 + m.Longest
	case SwapDetonate:
		return 50
	default:
		return 0
	}
}

// FindMoves lists every accepted swap, scanning row by row and trying each
// cell's right then lower neighbor. The grid is left unchanged.
func FindMoves(g *Grid, minRun int) []Move {
	var moves []Move
	for _, a := range g.Positions() {
		for _, b := range []Pos{a.Add(0, 1), a.Add(1, 0)} {
			if !g.InBounds(b) {
				continue
			}
			g.Swap(a, b)
			kind := ClassifySwap(g, a, b, minRun)
			longest := 0
			if kind == SwapMatch {
				for _, run := range FindRuns(g, minRun) {
					longest = max(longest, run.Len())
				}
			}
			g.Swap(a, b)

			if kind != SwapInvalid {
				moves = append(moves, Move{A: a, B: b, Kind: kind, Longest: longest})
			}
		}
	}
	return moves
}

// HasMove reports whether any accepted swap exists.
func HasMove(g *Grid, minRun int) bool {
	return len(FindMoves(g, minRun)) > 0
}

// BestMove returns the highest-weighted move, earliest in scan order on ties.
func BestMove(g *Grid, minRun int) (Move, bool) {
	moves := FindMoves(g, minRun)
	if len(moves) == 0 {
		return Move{}, false
	}
	best := moves[0]
	for _, m := range moves[1:] {
		if m.weight() > best.weight() {
			best = m
		}
	}
	return best, true
}
