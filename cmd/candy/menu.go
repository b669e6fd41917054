package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-arcade/internal/platform/tui"
	"github.com/vovakirdan/candy-arcade/internal/registry"
	"github.com/vovakirdan/candy-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a mode and left/right to change difficulty.
After a game ends, press B to return to the menu.

Controls:
  Up/Down/j/k   - Navigate menu
  Left/Right    - Change difficulty
  Enter/Space   - Play
  Tab           - Scoreboard
  Q             - Quit

Examples:
  candy menu
  candy menu --fps 30
  candy menu --difficulty easy`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	_, preset := loadSettings()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		cfg = menuResult.Config
		preset = menuResult.Difficulty

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if ds, ok := game.(registry.DifficultySetter); ok {
			//nolint:errcheck // Presets come from the menu
			ds.SetDifficulty(string(preset))
		}

		// New board for each game unless a seed was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
