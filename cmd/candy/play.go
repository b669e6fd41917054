package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/candy-arcade/internal/core"
	"github.com/vovakirdan/candy-arcade/internal/platform/tui"
	"github.com/vovakirdan/candy-arcade/internal/registry"
	"github.com/vovakirdan/candy-arcade/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode (default: candy, the 60 second timed mode).

Controls:
  Arrows/WASD   - Move cursor
  Enter/Space   - Select candy; select a neighbour to swap
  Mouse         - Click a candy, then a neighbour
  H             - Hint
  P/Esc         - Pause
  R             - Restart (after game over)
  B             - Back (when paused or over)
  Ctrl+S        - Save a screenshot to ~/.candy/screenshots
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Three colors, 50% more time
  normal - Config as written
  hard   - One extra color, 25% less time

Examples:
  candy play
  candy play candy_endless
  candy play --difficulty hard
  candy play --config ./my-candy.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "candy"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'candy list' to see available modes.")
		os.Exit(1)
	}

	_, preset := loadSettings()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	if ds, ok := game.(registry.DifficultySetter); ok {
		if err := ds.SetDifficulty(string(preset)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
