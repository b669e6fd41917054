package engine

// State is the selection state machine state.
type State uint8

const (
	StateIdle        State = iota // Waiting for a first selection
	StateOneSelected              // One token selected
	StateResolving                // Swap in flight, input locked
	StateGameOver                 // Session ended
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOneSelected:
		return "one_selected"
	case StateResolving:
		return "resolving"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the engine state. Mutating Board has no
// effect on the engine.
type Snapshot struct {
	Board       *Grid
	State       State
	Score       int
	Selected    Pos
	HasSelected bool
	Swaps       int // Accepted swaps so far
	BestChain   int // Longest cascade seen
	Specials    int // Specials created
	Shuffles    int
}

// At returns the token at p on the snapshot board.
func (s Snapshot) At(p Pos) (Token, bool) {
	return s.Board.Get(p)
}
