package engine

// ScoreKind identifies a scored construct.
type ScoreKind uint8

const (
	ScoreMatch   ScoreKind = iota // Plain run at the match threshold
	ScoreStriped                  // Striped creation
	ScoreRainbow                  // Rainbow creation
	ScoreBomb                     // Bomb creation at an intersection
)

// String returns the string representation of a score kind.
func (k ScoreKind) String() string {
	switch k {
	case ScoreMatch:
		return "match"
	case ScoreStriped:
		return "striped"
	case ScoreRainbow:
		return "rainbow"
	case ScoreBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// ScoreTable holds the points awarded per construct.
type ScoreTable struct {
	Match   int
	Striped int
	Rainbow int
	Bomb    int
}

// DefaultScoreTable returns the standard point values.
func DefaultScoreTable() ScoreTable {
	return ScoreTable{Match: 60, Striped: 120, Rainbow: 1000, Bomb: 500}
}

// Points returns the value of a construct.
func (t ScoreTable) Points(k ScoreKind) int {
	switch k {
	case ScoreMatch:
		return t.Match
	case ScoreStriped:
		return t.Striped
	case ScoreRainbow:
		return t.Rainbow
	case ScoreBomb:
		return t.Bomb
	default:
		return 0
	}
}

// ScoreEvent is one award.
type ScoreEvent struct {
	Kind   ScoreKind
	At     Pos
	Points int
	Total  int
}

// ScoreTracker accumulates points and notifies a listener once per award.
type ScoreTracker struct {
	table    ScoreTable
	total    int
	counts   [4]int
	onChange func(points, total int)
}

// NewScoreTracker creates a tracker. onChange may be nil.
func NewScoreTracker(table ScoreTable, onChange func(points, total int)) *ScoreTracker {
	return &ScoreTracker{table: table, onChange: onChange}
}

// Award adds the points for one construct and returns the event.
func (s *ScoreTracker) Award(k ScoreKind, at Pos) ScoreEvent {
	points := s.table.Points(k)
	s.total += points
	if int(k) < len(s.counts) {
		s.counts[k]++
	}
	if s.onChange != nil {
		s.onChange(points, s.total)
	}
	return ScoreEvent{Kind: k, At: at, Points: points, Total: s.total}
}

// Total returns the accumulated score.
func (s *ScoreTracker) Total() int {
	return s.total
}

// Count returns how many constructs of kind k have been scored.
func (s *ScoreTracker) Count(k ScoreKind) int {
	if int(k) >= len(s.counts) {
		return 0
	}
	return s.counts[k]
}
