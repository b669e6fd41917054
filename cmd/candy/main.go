// candy is a match-3 game for the terminal.
//
// Usage:
//
//	candy list              - List available modes
//	candy play [mode]       - Play a mode (default: candy)
//	candy menu              - Start menu to pick a mode interactively
//	candy serve             - Start SSH server for remote play
//	candy scores [mode]     - Show high scores and recent sessions
//	candy simulate          - Run headless autoplay sessions
//	candy config init       - Write the default config file
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.candy/scores.db)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-arcade/internal/config"
	"github.com/vovakirdan/candy-arcade/internal/games/candy"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "candy",
	Short: "Candy Match - a match-3 game in your terminal",
	Long: `Candy Match is a terminal match-3 game. Swap adjacent candies to line up
three or more of a color; longer lines and crossings make special candies.

Available commands:
  list      - Show all game modes
  play      - Play a mode directly
  menu      - Interactive mode picker
  serve     - Start SSH server for remote play
  scores    - View high scores and sessions
  simulate  - Run headless autoplay sessions
  config    - Manage the config file

Examples:
  candy play
  candy play candy_endless --difficulty easy
  candy menu
  candy serve --ssh :2222
  candy simulate --games 10 --seed 42`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.candy/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings loads the YAML configuration into the candy package and
// parses the difficulty flag. Failures print an error and exit.
func loadSettings() (config.CandyConfig, config.DifficultyPreset) {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadCandy(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	candy.SetConfig(cfg)

	return cfg, preset
}
