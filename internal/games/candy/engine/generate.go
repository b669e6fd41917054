package engine

// Rand is the random source the engine draws from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// RandomColor picks a palette color uniformly.
func RandomColor(palette []Color, rng Rand) Color {
	return palette[rng.Intn(len(palette))]
}

// Generate fills a rows×cols grid with plain tokens so that no run of three
// exists. Cells are placed left to right, top to bottom; a color is rejected
// when the two cells directly above or the two cells directly to the left
// already carry it. The remaining colors are drawn uniformly.
// The palette must hold at least three colors.
func Generate(rows, cols int, palette []Color, rng Rand) *Grid {
	g := NewGrid(rows, cols)
	allowed := make([]Color, 0, len(palette))

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			allowed = allowed[:0]
			for _, color := range palette {
				if !wouldRun(g, r, c, color) {
					allowed = append(allowed, color)
				}
			}
			g.Set(P(r, c), Plain(allowed[rng.Intn(len(allowed))]))
		}
	}
	return g
}

// wouldRun reports whether placing color at (r, c) completes a three-run with
// the two previously placed neighbors above or to the left.
func wouldRun(g *Grid, r, c int, color Color) bool {
	if r >= 2 && sameColor(g, P(r-1, c), color) && sameColor(g, P(r-2, c), color) {
		return true
	}
	if c >= 2 && sameColor(g, P(r, c-1), color) && sameColor(g, P(r, c-2), color) {
		return true
	}
	return false
}

func sameColor(g *Grid, p Pos, color Color) bool {
	t, ok := g.Get(p)
	return ok && t.Matchable() && t.Color == color
}
