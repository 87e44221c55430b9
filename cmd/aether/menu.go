package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aether-knight/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for the records
screen (high scores and save slots). Press M on the title, pause or game
over screen to come back to the menu.

Examples:
  aether menu
  aether menu --fps 30
  aether menu --db ./aether.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, logFile := newFileLogger()
	defer logFile.Close()

	st, err := openStores(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	err = tui.RunSession(tui.Options{
		Config: runtimeConfig(),
		Scores: st.scores,
		Saves:  st.saves,
		Logger: logger,
		Player: playerName(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
