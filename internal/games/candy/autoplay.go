package candy

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/candy-arcade/internal/config"
	"github.com/vovakirdan/candy-arcade/internal/games/candy/engine"
)

// DefaultAutoplaySwaps is the number of swaps an autoplay run makes when
// AutoplayOptions.MaxSwaps is zero.
const DefaultAutoplaySwaps = 100

// AutoplayOptions configures a headless run.
type AutoplayOptions struct {
	Seed     int64
	MaxSwaps int
	// Sloppiness is the chance of playing a random accepted move instead of
	// the hinted one. Zero always plays the hint.
	Sloppiness float64
	OnSwap     func(SwapReport)
}

// SwapReport describes one swap made by the autoplayer.
type SwapReport struct {
	Index  int
	Move   engine.Move
	Result engine.Result
}

// AutoplayReport summarizes a headless run.
type AutoplayReport struct {
	Seed      int64
	Score     int
	Swaps     int
	BestChain int
	Specials  int
	Shuffles  int
	Combos    int
	Stuck     bool   // No move was left and reshuffling is disabled
	Board     string // Final board
}

// Autoplay plays one session without a screen, always choosing an accepted
// swap, until MaxSwaps swaps were made or no move remains.
func Autoplay(ctx context.Context, cfg config.CandyConfig, opts AutoplayOptions) (AutoplayReport, error) {
	if opts.MaxSwaps <= 0 {
		opts.MaxSwaps = DefaultAutoplaySwaps
	}
	report := AutoplayReport{Seed: opts.Seed}

	rng := rand.New(rand.NewSource(opts.Seed))
	ecfg, err := EngineConfig(cfg, rng)
	if err != nil {
		return report, err
	}
	eng, err := engine.New(ecfg)
	if err != nil {
		return report, err
	}
	defer eng.EndSession()

	for i := range opts.MaxSwaps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		mv, ok := eng.Hint()
		if !ok {
			report.Stuck = true
			break
		}
		if opts.Sloppiness > 0 && rng.Float64() < opts.Sloppiness {
			moves := eng.Moves()
			mv = moves[rng.Intn(len(moves))]
		}

		res, err := eng.Swap(mv.A, mv.B)
		if err != nil {
			return report, fmt.Errorf("candy: autoplay swap %s-%s: %w", mv.A, mv.B, err)
		}
		if res.Outcome != engine.OutcomeResolved {
			return report, fmt.Errorf("candy: autoplay swap %s-%s was %s", mv.A, mv.B, res.Outcome)
		}
		if res.Kind == engine.SwapCombo {
			report.Combos++
		}
		if opts.OnSwap != nil {
			opts.OnSwap(SwapReport{Index: i, Move: mv, Result: res})
		}
	}

	snap := eng.Snapshot()
	report.Score = snap.Score
	report.Swaps = snap.Swaps
	report.BestChain = snap.BestChain
	report.Specials = snap.Specials
	report.Shuffles = snap.Shuffles
	report.Board = snap.Board.String()
	return report, nil
}
