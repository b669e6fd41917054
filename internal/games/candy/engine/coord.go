package engine

import "fmt"

// Pos is a logical cell coordinate. Row 0 is the top row.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns a new Pos offset by (dr, dc).
func (p Pos) Add(dr, dc int) Pos {
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// Manhattan returns the Manhattan distance to another position.
func (p Pos) Manhattan(other Pos) int {
	return abs(p.Row-other.Row) + abs(p.Col-other.Col)
}

// Chebyshev returns the king-move distance to another position.
func (p Pos) Chebyshev(other Pos) int {
	return max(abs(p.Row-other.Row), abs(p.Col-other.Col))
}

// Adjacent reports whether two positions share an edge.
func (p Pos) Adjacent(other Pos) bool {
	return p.Manhattan(other) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
