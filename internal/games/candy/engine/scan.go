package engine

import "fmt"

// Orientation is the axis a run lies on.
type Orientation uint8

const (
	Horizontal Orientation = iota // Along a row
	Vertical                      // Along a column
)

// String returns the string representation of an orientation.
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Run is a maximal line of same-colored tokens.
// Line is the row index for horizontal runs and the column index for
// vertical ones; Start and End are inclusive indices along the line.
type Run struct {
	Orientation Orientation
	Line        int
	Start       int
	End         int
	Color       Color
}

// Len returns the number of cells in the run.
func (r Run) Len() int {
	return r.End - r.Start + 1
}

// At returns the i-th cell of the run.
func (r Run) At(i int) Pos {
	if r.Orientation == Horizontal {
		return P(r.Line, r.Start+i)
	}
	return P(r.Start+i, r.Line)
}

// Cells returns every cell in the run, in order along the line.
func (r Run) Cells() []Pos {
	out := make([]Pos, r.Len())
	for i := range out {
		out[i] = r.At(i)
	}
	return out
}

// Center returns the integer midpoint of the run.
func (r Run) Center() Pos {
	return r.At((r.End - r.Start) / 2)
}

// String returns a compact description of the run.
func (r Run) String() string {
	return fmt.Sprintf("%s %s line=%d [%d..%d]", r.Color, r.Orientation, r.Line, r.Start, r.End)
}

// FindRuns returns every run of at least minRun tokens. Horizontal runs come
// first (top to bottom), then vertical runs (left to right). Vacant cells and
// rainbows break runs.
func FindRuns(g *Grid, minRun int) []Run {
	var runs []Run
	for r := 0; r < g.Rows(); r++ {
		runs = scanLine(runs, g, Horizontal, r, g.Cols(), minRun)
	}
	for c := 0; c < g.Cols(); c++ {
		runs = scanLine(runs, g, Vertical, c, g.Rows(), minRun)
	}
	return runs
}

// HasRun reports whether the grid contains any run of at least minRun.
func HasRun(g *Grid, minRun int) bool {
	return len(FindRuns(g, minRun)) > 0
}

func scanLine(runs []Run, g *Grid, o Orientation, line, length, minRun int) []Run {
	at := func(i int) Pos {
		if o == Horizontal {
			return P(line, i)
		}
		return P(i, line)
	}

	start := 0
	for start < length {
		t, ok := g.Get(at(start))
		if !ok || !t.Matchable() {
			start++
			continue
		}

		end := start
		for end+1 < length {
			next, ok := g.Get(at(end + 1))
			if !ok || !next.Matchable() || next.Color != t.Color {
				break
			}
			end++
		}

		if end-start+1 >= minRun {
			runs = append(runs, Run{
				Orientation: o,
				Line:        line,
				Start:       start,
				End:         end,
				Color:       t.Color,
			})
		}
		start = end + 1
	}
	return runs
}
