package engine

import "fmt"

// swapLocked exchanges a and b and drives the resolve loop to settlement.
// The caller holds e.mu; it is released only while the Pace hook runs.
func (e *Engine) swapLocked(a, b Pos) Result {
	e.state = StateResolving
	swap := [2]Pos{a, b}

	e.grid.Swap(a, b)
	e.emit(PhaseEvent{Phase: PhaseSwap, Swap: swap})

	kind := ClassifySwap(e.grid, a, b, e.cfg.Thresholds.Match)
	if kind == SwapInvalid {
		e.grid.Swap(a, b)
		e.emit(PhaseEvent{Phase: PhaseRevert, Swap: swap})
		e.unlock()
		res := e.result(OutcomeReverted)
		res.Kind = kind
		return res
	}

	e.swaps++
	res := e.resolve(a, b, kind)
	e.unlock()
	res.Outcome = OutcomeResolved
	res.Snapshot = e.snapshotLocked()
	return res
}

// unlock ends a resolution. EndSession during the resolution wins.
func (e *Engine) unlock() {
	if e.state == StateResolving {
		e.state = StateIdle
	}
}

// resolve runs the opening pass for an accepted swap, then sweeps, refills
// and rescans until no run remains. a and b are the swapped positions; after
// the swap a holds the token first named at b.
func (e *Engine) resolve(a, b Pos, kind SwapKind) Result {
	res := Result{Kind: kind, Chain: 1}
	swap := [2]Pos{a, b}
	r := e.newResolution()
	var scores []ScoreEvent

	switch kind {
	case SwapCombo:
		// The first-named token now sits at b.
		res.Combo = r.ApplyCombo(b, a)
	case SwapRainbow:
		rainbow, partner := a, b
		if t, _ := e.grid.Get(b); t.IsRainbow() {
			rainbow, partner = b, a
		}
		target, _ := e.grid.Get(partner)
		r.Consume(rainbow)
		r.AffectColor(target.Color)
	case SwapMatch:
		scores = e.promote(r, FindRuns(e.grid, e.cfg.Thresholds.Match), &res)
	case SwapDetonate:
		special := a
		if t, _ := e.grid.Get(b); t.IsSpecial() {
			special = b
		}
		r.Detonate(special)
	}

	combo := res.Combo
	for {
		r.Settle()
		e.emit(PhaseEvent{
			Phase:  PhaseMark,
			Chain:  res.Chain,
			Swap:   swap,
			Cells:  r.MarkedCells(),
			Blasts: r.Blasts(),
			Scores: scores,
			Combo:  combo,
		})

		removed := r.Sweep()
		res.Removed += len(removed)
		e.emit(PhaseEvent{Phase: PhaseSweep, Chain: res.Chain, Swap: swap, Cells: removed})

		falls := Collapse(e.grid, PlainSpawner(e.cfg.Palette, e.cfg.Rand))
		e.emit(PhaseEvent{Phase: PhaseRefill, Chain: res.Chain, Swap: swap, Falls: falls})

		runs := FindRuns(e.grid, e.cfg.Thresholds.Match)
		if len(runs) == 0 {
			break
		}
		res.Chain++
		combo = ComboNone
		r = e.newResolution()
		scores = e.promote(r, runs, &res)
	}

	mustBeSettled(e.grid, e.cfg.Thresholds.Match)
	e.bestChain = max(e.bestChain, res.Chain)

	if e.cfg.Reshuffle && !HasMove(e.grid, e.cfg.Thresholds.Match) {
		e.grid = e.generate()
		e.shuffles++
		e.emit(PhaseEvent{Phase: PhaseShuffle, Chain: res.Chain, Swap: swap})
	}
	e.emit(PhaseEvent{Phase: PhaseSettle, Chain: res.Chain, Swap: swap})
	return res
}

// promote seeds a pass with the cells of runs, registers the promoted
// survivors and awards one score event per construct.
func (e *Engine) promote(r *Resolution, runs []Run, res *Result) []ScoreEvent {
	plan := Promote(runs, e.cfg.Thresholds)
	for _, p := range plan.Cells {
		r.Affect(p)
	}
	for p, t := range plan.Survivors {
		r.Survive(p, t)
	}

	scores := make([]ScoreEvent, 0, len(plan.Created))
	for _, c := range plan.Created {
		ev := e.score.Award(c.Kind, c.At)
		res.Points += ev.Points
		scores = append(scores, ev)
	}
	res.Specials += len(plan.Survivors)
	e.specials += len(plan.Survivors)
	return scores
}

func (e *Engine) newResolution() *Resolution {
	return NewResolution(e.grid, e.cfg.Palette, e.cfg.Rand)
}

// emit hands a frame to OnPhase and then waits on Pace with the lock released.
func (e *Engine) emit(ev PhaseEvent) {
	hooks := e.cfg.Hooks
	if hooks.OnPhase != nil {
		ev.Board = e.grid.Clone()
		hooks.OnPhase(ev)
	}
	if hooks.Pace != nil {
		e.mu.Unlock()
		hooks.Pace(ev.Phase)
		e.mu.Lock()
	}
}

// checkSettled returns an error if g has vacancies or runs.
func checkSettled(g *Grid, minRun int) error {
	if n := g.VacantCount(); n > 0 {
		return fmt.Errorf("engine: %d vacant cells after refill", n)
	}
	if runs := FindRuns(g, minRun); len(runs) > 0 {
		return fmt.Errorf("engine: run %s left after settle", runs[0])
	}
	return nil
}

// mustBeSettled panics on a broken resting invariant in candydebug builds.
func mustBeSettled(g *Grid, minRun int) {
	if !debugChecks {
		return
	}
	if err := checkSettled(g, minRun); err != nil {
		panic(err)
	}
}
