package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aether-knight/internal/games/aether"
	"github.com/vovakirdan/aether-knight/internal/platform/tui"
	"github.com/vovakirdan/aether-knight/internal/registry"
)

var flagSlot int

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play Aether Knight",
	Long: `Start playing. The variant defaults to "aether".

Controls:
  Left/Right, A/D  - Move
  Space/Up/W       - Jump
  P                - Pause / resume
  T                - Title (from pause or game over)
  N / L            - New game / load on the title screen
  1-3              - Pick a slot or a reward
  C / R            - Continue / retry after game over
  M                - Back to the menu (not during a run)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Less damage taken, weaker enemies, more drops
  normal - Default tuning
  hard   - More damage taken, tougher enemies, more lightning lanes
  fixed  - No wave scaling of spawn and lightning intervals

Examples:
  aether play
  aether play aether_classic
  aether play --slot 2 --difficulty hard
  aether play --backend memory --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSlot, "slot", 0, "Save slot to preselect on the title screen")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "aether"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'aether list' to see available variants.")
		os.Exit(1)
	}

	logger, logFile := newFileLogger()
	defer logFile.Close()

	st, err := openStores(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	aether.SetStartSlot(flagSlot)

	game, err := registry.Create(gameID)
	if err != nil {
		st.Close()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(game, tui.Options{
		Config: runtimeConfig(),
		Scores: st.scores,
		Saves:  st.saves,
		Logger: logger,
		Player: playerName(),
	})

	// Close store before potential exit
	st.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
