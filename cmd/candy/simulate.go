package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-arcade/internal/games/candy"
	"github.com/vovakirdan/candy-arcade/internal/storage"
)

// autoplayGameID is the mode simulated sessions are recorded under.
const autoplayGameID = "candy_endless"

var (
	flagSimGames      int
	flagSimSwaps      int
	flagSimSloppiness float64
	flagSimVerbose    bool
	flagSimSave       bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless autoplay sessions",
	Long: `Play sessions without a screen using the hint finder as the player.
Each game uses seed, seed+1, ... so runs are reproducible with --seed.

Examples:
  candy simulate
  candy simulate --games 20 --swaps 200 --seed 42
  candy simulate --sloppiness 0.5 --verbose
  candy simulate --difficulty hard --save`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 5, "Number of sessions to play")
	simulateCmd.Flags().IntVar(&flagSimSwaps, "swaps", candy.DefaultAutoplaySwaps, "Swaps per session")
	simulateCmd.Flags().Float64Var(&flagSimSloppiness, "sloppiness", 0, "Chance of a random move instead of the hint (0-1)")
	simulateCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log every swap")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the sessions in the scores database")
}

func runSimulate(cmd *cobra.Command, _ []string) {
	cfg, preset := loadSettings()
	cfg = preset.Apply(cfg)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "candy-sim",
	})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	if flagSimSloppiness < 0 || flagSimSloppiness > 1 {
		fmt.Fprintln(os.Stderr, "Error: --sloppiness must be between 0 and 1")
		os.Exit(1)
	}

	var store *storage.Store
	if flagSimSave {
		var err error
		if store, err = storage.Open(flagDBPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Info("starting",
		"games", flagSimGames,
		"swaps", flagSimSwaps,
		"difficulty", preset,
		"board", fmt.Sprintf("%dx%d", cfg.Board.Rows, cfg.Board.Cols),
		"colors", len(cfg.Palette),
	)

	var reports []candy.AutoplayReport
	for i := range flagSimGames {
		started := time.Now()
		report, err := candy.Autoplay(ctx, cfg, candy.AutoplayOptions{
			Seed:       seed + int64(i),
			MaxSwaps:   flagSimSwaps,
			Sloppiness: flagSimSloppiness,
			OnSwap: func(s candy.SwapReport) {
				logger.Debug("swap",
					"game", i+1,
					"n", s.Index+1,
					"move", fmt.Sprintf("%s-%s", s.Move.A, s.Move.B),
					"kind", s.Result.Kind,
					"combo", s.Result.Combo,
					"points", s.Result.Points,
					"chain", s.Result.Chain,
					"removed", s.Result.Removed,
				)
			},
		})
		if err != nil {
			if ctx.Err() != nil {
				logger.Warn("interrupted", "completed", len(reports))
				break
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		logger.Info("game finished",
			"game", i+1,
			"seed", report.Seed,
			"score", report.Score,
			"swaps", report.Swaps,
			"best_chain", report.BestChain,
			"specials", report.Specials,
			"combos", report.Combos,
			"shuffles", report.Shuffles,
			"stuck", report.Stuck,
			"took", time.Since(started).Round(time.Millisecond),
		)
		if store != nil {
			saveAutoplay(store, logger, report)
		}
		reports = append(reports, report)
	}

	printSummary(reports)
}

// saveAutoplay records a finished run as an endless session.
func saveAutoplay(store *storage.Store, logger *log.Logger, r candy.AutoplayReport) {
	if _, err := store.SaveScore(autoplayGameID, r.Score); err != nil {
		logger.Error("could not save score", "error", err)
		return
	}
	id, err := store.SaveSession(storage.SessionRecord{
		GameID:    autoplayGameID,
		Score:     r.Score,
		Swaps:     r.Swaps,
		BestChain: r.BestChain,
		Specials:  r.Specials,
		Shuffles:  r.Shuffles,
		EndReason: "autoplay",
	})
	if err != nil {
		logger.Error("could not save session", "error", err)
		return
	}
	logger.Debug("session saved", "id", id)
}

// printSummary writes per-run totals to stdout.
func printSummary(reports []candy.AutoplayReport) {
	if len(reports) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("  %-20s  %-8s  %-6s  %-6s  %-8s  %s\n", "Seed", "Score", "Swaps", "Chain", "Specials", "Shuffles")
	best, total := reports[0], 0
	for _, r := range reports {
		fmt.Printf("  %-20d  %-8d  %-6d  x%-5d  %-8d  %d\n", r.Seed, r.Score, r.Swaps, r.BestChain, r.Specials, r.Shuffles)
		total += r.Score
		if r.Score > best.Score {
			best = r
		}
	}
	fmt.Println()
	fmt.Printf("Average score: %.0f  Best: %d (seed %d)\n", float64(total)/float64(len(reports)), best.Score, best.Seed)
}
