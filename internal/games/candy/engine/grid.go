package engine

import "strings"

// Cell is a single board slot. A vacant cell only exists mid-resolution.
type Cell struct {
	Filled bool
	Token  Token // Valid only when Filled is true
}

// Grid is the ROWS×COLS board of optional tokens.
// Cells are stored in row-major order: index = row*Cols + col.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid creates a grid with every cell vacant.
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

// GridFromRows builds a fully occupied grid from rows of plain colors.
// Intended for fixtures; every row must have the same length.
func GridFromRows(rows [][]Color) *Grid {
	if len(rows) == 0 {
		return NewGrid(0, 0)
	}
	g := NewGrid(len(rows), len(rows[0]))
	for r, line := range rows {
		for c, color := range line {
			g.Set(P(r, c), Plain(color))
		}
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) index(p Pos) int {
	return p.Row*g.cols + p.Col
}

// InBounds returns true if the position lies on the board.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Get returns the token at p and whether the cell is occupied.
// Out-of-bounds positions read as vacant.
func (g *Grid) Get(p Pos) (Token, bool) {
	if !g.InBounds(p) {
		return Token{}, false
	}
	cell := g.cells[g.index(p)]
	return cell.Token, cell.Filled
}

// Cell returns the raw cell at p.
func (g *Grid) Cell(p Pos) Cell {
	if !g.InBounds(p) {
		return Cell{}
	}
	return g.cells[g.index(p)]
}

// Set places a token at p.
func (g *Grid) Set(p Pos, t Token) {
	if g.InBounds(p) {
		g.cells[g.index(p)] = Cell{Filled: true, Token: t}
	}
}

// Clear vacates the cell at p.
func (g *Grid) Clear(p Pos) {
	if g.InBounds(p) {
		g.cells[g.index(p)] = Cell{}
	}
}

// Swap exchanges the contents of two cells.
func (g *Grid) Swap(a, b Pos) {
	if !g.InBounds(a) || !g.InBounds(b) {
		return
	}
	ia, ib := g.index(a), g.index(b)
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, cell := range g.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}

// Positions returns every coordinate, ordered by row then column.
func (g *Grid) Positions() []Pos {
	out := make([]Pos, 0, g.rows*g.cols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			out = append(out, P(r, c))
		}
	}
	return out
}

// VacantCount returns the number of empty cells.
func (g *Grid) VacantCount() int {
	n := 0
	for _, cell := range g.cells {
		if !cell.Filled {
			n++
		}
	}
	return n
}

// IsFull reports whether every cell holds a token.
func (g *Grid) IsFull() bool {
	return g.VacantCount() == 0
}

// HasSpecial reports whether any token on the board is special.
func (g *Grid) HasSpecial() bool {
	for _, cell := range g.cells {
		if cell.Filled && cell.Token.IsSpecial() {
			return true
		}
	}
	return false
}

// PositionsOfColor returns every occupied cell holding color c.
func (g *Grid) PositionsOfColor(c Color) []Pos {
	var out []Pos
	for r := 0; r < g.rows; r++ {
		for col := 0; col < g.cols; col++ {
			p := P(r, col)
			if t, ok := g.Get(p); ok && t.Color == c {
				out = append(out, p)
			}
		}
	}
	return out
}

// String renders the grid as one line of glyphs per row. Vacant cells are '.'.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteRune('\n')
		}
		for c := 0; c < g.cols; c++ {
			t, ok := g.Get(P(r, c))
			if !ok {
				sb.WriteRune('.')
				continue
			}
			sb.WriteRune(t.Char())
		}
	}
	return sb.String()
}
