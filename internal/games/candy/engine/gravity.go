package engine

// Fall describes a token moving down a column, or a new token spawned at To.
type Fall struct {
	From    Pos // Row is negative for spawned tokens
	To      Pos
	Token   Token
	Spawned bool
}

// Distance returns how many rows the token dropped.
func (f Fall) Distance() int {
	return f.To.Row - f.From.Row
}

// Collapse compacts every column downward and fills the remaining vacancies
// from spawn. Columns are processed left to right, each bottom to top.
// Spawned tokens are recorded as falling in from above the board.
func Collapse(g *Grid, spawn func() Token) []Fall {
	var falls []Fall
	for c := 0; c < g.Cols(); c++ {
		spawned := 0
		for r := g.Rows() - 1; r >= 0; r-- {
			dst := P(r, c)
			if _, ok := g.Get(dst); ok {
				continue
			}

			src, found := nearestAbove(g, dst)
			if found {
				t, _ := g.Get(src)
				g.Set(dst, t)
				g.Clear(src)
				falls = append(falls, Fall{From: src, To: dst, Token: t})
				continue
			}

			spawned++
			t := spawn()
			g.Set(dst, t)
			falls = append(falls, Fall{From: P(-spawned, c), To: dst, Token: t, Spawned: true})
		}
	}
	return falls
}

func nearestAbove(g *Grid, p Pos) (Pos, bool) {
	for r := p.Row - 1; r >= 0; r-- {
		above := P(r, p.Col)
		if _, ok := g.Get(above); ok {
			return above, true
		}
	}
	return Pos{}, false
}

// PlainSpawner returns a spawn function that draws plain tokens uniformly
// from palette.
func PlainSpawner(palette []Color, rng Rand) func() Token {
	return func() Token {
		return Plain(RandomColor(palette, rng))
	}
}
