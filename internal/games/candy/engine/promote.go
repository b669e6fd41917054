package engine

// Thresholds are the run lengths that trigger matching and promotion.
type Thresholds struct {
	Match   int // Minimum run length that clears
	Striped int // Run length that promotes the center to striped
	Rainbow int // Run length at or above which the center becomes a rainbow
}

// DefaultThresholds returns the classic 3/4/5 rule.
func DefaultThresholds() Thresholds {
	return Thresholds{Match: 3, Striped: 4, Rainbow: 5}
}

// Valid reports whether the thresholds are ordered and usable.
func (th Thresholds) Valid() bool {
	return th.Match >= 3 && th.Striped > th.Match && th.Rainbow > th.Striped
}

// Creation is a scored construct produced by a promotion plan.
type Creation struct {
	Kind ScoreKind
	At   Pos
}

// Plan is the outcome of applying the promotion rule to one pass of runs.
type Plan struct {
	// Cells lists every run cell once, in scan order.
	Cells []Pos
	// Survivors maps a cell to the special token it becomes at sweep time.
	Survivors map[Pos]Token
	// Created lists one entry per run plus one per bomb intersection.
	Created []Creation
}

// Promote applies the promotion rule to runs found in the same pass.
//
// Each run's center survives as striped (perpendicular axis) or rainbow
// depending on its length. A cell covered by two or more runs becomes a bomb,
// overriding striped but never rainbow.
func Promote(runs []Run, th Thresholds) Plan {
	plan := Plan{Survivors: make(map[Pos]Token)}
	coverage := make(map[Pos]int)

	for _, run := range runs {
		for _, p := range run.Cells() {
			if coverage[p] == 0 {
				plan.Cells = append(plan.Cells, p)
			}
			coverage[p]++
		}

		center := run.Center()
		n := run.Len()
		switch {
		case n >= th.Rainbow:
			plan.Survivors[center] = Rainbow()
			plan.Created = append(plan.Created, Creation{Kind: ScoreRainbow, At: center})
		case n >= th.Striped:
			// Already claimed as a rainbow by a crossing run.
			if !plan.Survivors[center].IsRainbow() {
				plan.Survivors[center] = Token{Color: run.Color, Special: stripedAcross(run.Orientation)}
			}
			plan.Created = append(plan.Created, Creation{Kind: ScoreStriped, At: center})
		default:
			plan.Created = append(plan.Created, Creation{Kind: ScoreMatch, At: center})
		}
	}

	colors := runColors(runs)
	for _, p := range plan.Cells {
		if coverage[p] < 2 || plan.Survivors[p].IsRainbow() {
			continue
		}
		plan.Survivors[p] = Token{Color: colors[p], Special: SpecialBomb}
		plan.Created = append(plan.Created, Creation{Kind: ScoreBomb, At: p})
	}
	return plan
}

// stripedAcross returns the striped kind perpendicular to a run.
func stripedAcross(o Orientation) Special {
	if o == Horizontal {
		return SpecialStripedColumn
	}
	return SpecialStripedRow
}

func runColors(runs []Run) map[Pos]Color {
	out := make(map[Pos]Color)
	for _, run := range runs {
		for _, p := range run.Cells() {
			out[p] = run.Color
		}
	}
	return out
}
