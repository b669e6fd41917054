package engine

import "time"

// Phase is a step of the resolve loop exposed to presentation hooks.
type Phase uint8

const (
	PhaseSwap    Phase = iota // Tokens exchanged
	PhaseRevert               // Invalid swap undone
	PhaseMark                 // Cells marked for removal, not yet swept
	PhaseSweep                // Marked cells vacated, survivors promoted
	PhaseRefill               // Gravity and refill done
	PhaseShuffle              // Board regenerated because no move remained
	PhaseSettle               // Resolve loop finished
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseSwap:
		return "swap"
	case PhaseRevert:
		return "revert"
	case PhaseMark:
		return "mark"
	case PhaseSweep:
		return "sweep"
	case PhaseRefill:
		return "refill"
	case PhaseShuffle:
		return "shuffle"
	case PhaseSettle:
		return "settle"
	default:
		return "unknown"
	}
}

// PhaseEvent is a presentation frame emitted between resolve steps.
type PhaseEvent struct {
	Phase  Phase
	Board  *Grid // Copy of the board at this point
	Chain  int   // 1 for the swap's own pass, 2+ for cascades
	Swap   [2]Pos
	Cells  []Pos // Marked cells (PhaseMark) or vacated cells (PhaseSweep)
	Blasts []Blast
	Falls  []Fall
	Scores []ScoreEvent
	Combo  Combo
}

// Hooks are optional callbacks invoked during resolution. Nil fields are
// skipped. OnScoreChanged and OnPhase run with the engine locked and must not
// call back into it. Pace runs with the engine unlocked, so it may block while
// the host animates; input received meanwhile gets ErrEngineLocked.
type Hooks struct {
	OnScoreChanged func(points, total int)
	OnPhase        func(PhaseEvent)
	Pace           func(Phase)
}

// DelayPacer returns a Pace hook that sleeps for the configured duration of
// each phase. Phases missing from delays do not pause.
func DelayPacer(delays map[Phase]time.Duration) func(Phase) {
	return func(p Phase) {
		if d := delays[p]; d > 0 {
			time.Sleep(d)
		}
	}
}
