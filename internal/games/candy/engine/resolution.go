package engine

// Blast records one special detonation during a pass.
type Blast struct {
	At      Pos
	Special Special
	Color   Color // Target color for rainbow blasts
	Combo   Combo // Set when the blast is a swap combo
}

// Resolution is a single mark-and-sweep pass over the grid.
//
// Marking a cell that holds an untriggered special queues its detonation.
// Detonations run from a FIFO work-list until it drains; each cell fires at
// most once per pass, so a chain ends after at most one blast per special.
type Resolution struct {
	grid    *Grid
	palette []Color
	rng     Rand

	marked    []bool
	triggered []bool
	order     []Pos
	queue     []Pos

	survivors map[Pos]Token
	blasts    []Blast
}

// NewResolution starts an empty pass over g. Passive rainbow blasts draw their
// target color from palette using rng.
func NewResolution(g *Grid, palette []Color, rng Rand) *Resolution {
	n := g.Rows() * g.Cols()
	return &Resolution{
		grid:      g,
		palette:   palette,
		rng:       rng,
		marked:    make([]bool, n),
		triggered: make([]bool, n),
		survivors: make(map[Pos]Token),
	}
}

// Affect marks p for removal. A special token at p that has not fired yet is
// queued for detonation. Repeated calls are no-ops.
func (r *Resolution) Affect(p Pos) {
	if !r.grid.InBounds(p) {
		return
	}
	i := r.grid.index(p)
	if r.marked[i] {
		return
	}
	r.marked[i] = true
	r.order = append(r.order, p)

	if t, ok := r.grid.Get(p); ok && t.IsSpecial() && !r.triggered[i] {
		r.queue = append(r.queue, p)
	}
}

// Consume marks p for removal without letting it detonate later in the pass.
func (r *Resolution) Consume(p Pos) {
	if !r.grid.InBounds(p) {
		return
	}
	r.triggered[r.grid.index(p)] = true
	r.Affect(p)
}

// Detonate fires the special at p immediately, even if p is already marked.
// It does nothing if p already fired in this pass or holds no special.
func (r *Resolution) Detonate(p Pos) {
	if !r.grid.InBounds(p) {
		return
	}
	i := r.grid.index(p)
	if r.triggered[i] {
		return
	}
	r.triggered[i] = true
	r.Affect(p)

	t, ok := r.grid.Get(p)
	if !ok {
		return
	}
	switch t.Special {
	case SpecialStripedRow:
		r.AffectRows(p.Row, p.Row)
	case SpecialStripedColumn:
		r.AffectCols(p.Col, p.Col)
	case SpecialBomb:
		r.AffectArea(p, 1)
	case SpecialRainbow:
		color := RandomColor(r.palette, r.rng)
		r.AffectColor(color)
		r.blasts = append(r.blasts, Blast{At: p, Special: t.Special, Color: color})
		return
	default:
		return
	}
	r.blasts = append(r.blasts, Blast{At: p, Special: t.Special, Color: t.Color})
}

// AffectRows marks every cell in rows from..to, clipped to the board.
func (r *Resolution) AffectRows(from, to int) {
	for row := max(from, 0); row <= min(to, r.grid.Rows()-1); row++ {
		for col := 0; col < r.grid.Cols(); col++ {
			r.Affect(P(row, col))
		}
	}
}

// AffectCols marks every cell in columns from..to, clipped to the board.
func (r *Resolution) AffectCols(from, to int) {
	for col := max(from, 0); col <= min(to, r.grid.Cols()-1); col++ {
		for row := 0; row < r.grid.Rows(); row++ {
			r.Affect(P(row, col))
		}
	}
}

// AffectArea marks every cell within Chebyshev distance radius of center.
func (r *Resolution) AffectArea(center Pos, radius int) {
	for row := center.Row - radius; row <= center.Row+radius; row++ {
		for col := center.Col - radius; col <= center.Col+radius; col++ {
			r.Affect(P(row, col))
		}
	}
}

// AffectColor marks every token of color c.
func (r *Resolution) AffectColor(c Color) {
	for _, p := range r.grid.PositionsOfColor(c) {
		r.Affect(p)
	}
}

// AffectAll marks every cell on the board.
func (r *Resolution) AffectAll() {
	r.AffectRows(0, r.grid.Rows()-1)
}

// Survive records that p stays on the board as t when the pass is swept.
func (r *Resolution) Survive(p Pos, t Token) {
	r.survivors[p] = t
}

// Settle drains the detonation work-list.
func (r *Resolution) Settle() {
	for len(r.queue) > 0 {
		p := r.queue[0]
		r.queue = r.queue[1:]
		r.Detonate(p)
	}
}

// Marked reports whether p is marked for removal.
func (r *Resolution) Marked(p Pos) bool {
	return r.grid.InBounds(p) && r.marked[r.grid.index(p)]
}

// Triggered reports whether the special at p has fired in this pass.
func (r *Resolution) Triggered(p Pos) bool {
	return r.grid.InBounds(p) && r.triggered[r.grid.index(p)]
}

// MarkedCells returns marked cells in the order they were marked.
func (r *Resolution) MarkedCells() []Pos {
	out := make([]Pos, len(r.order))
	copy(out, r.order)
	return out
}

// Blasts returns the detonations fired so far.
func (r *Resolution) Blasts() []Blast {
	out := make([]Blast, len(r.blasts))
	copy(out, r.blasts)
	return out
}

// Sweep settles any pending detonations, vacates every marked cell and places
// the survivors. It returns the cells that were vacated.
func (r *Resolution) Sweep() []Pos {
	r.Settle()

	var removed []Pos
	for _, p := range r.order {
		if _, keep := r.survivors[p]; keep {
			continue
		}
		if _, ok := r.grid.Get(p); ok {
			r.grid.Clear(p)
			removed = append(removed, p)
		}
	}
	for p, t := range r.survivors {
		r.grid.Set(p, t)
	}
	return removed
}
