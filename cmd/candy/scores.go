package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-arcade/internal/registry"
	"github.com/vovakirdan/candy-arcade/internal/storage"
)

var (
	flagSessionLimit int
	flagClear        bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and recent sessions",
	Long: `Display the top 10 high scores and the most recent sessions for a mode
(default: candy).

Examples:
  candy scores
  candy scores candy_endless --sessions 20
  candy scores candy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagSessionLimit, "sessions", 5, "Number of recent sessions to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and sessions for the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := "candy"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'candy list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'candy play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.0f  Best chain: x%d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestChain)
	}

	if flagSessionLimit <= 0 {
		return
	}
	sessions, err := store.RecentSessions(gameID, flagSessionLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}
	if len(sessions) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent sessions:")
	fmt.Printf("  %-16s  %-7s  %-5s  %-5s  %-8s  %-5s  %s\n", "Date", "Score", "Swaps", "Chain", "Specials", "Time", "End")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-7d  %-5d  x%-4d  %-8d  %d:%02d  %s\n",
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.Score, s.Swaps, s.BestChain, s.Specials,
			s.Duration/60, s.Duration%60,
			s.EndReason,
		)
	}
}
