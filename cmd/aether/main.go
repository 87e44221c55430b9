// aether is Aether Knight, an arcade brawler for the terminal.
//
// Usage:
//
//	aether list              - List the rule sets
//	aether play [variant]    - Play (default variant: aether)
//	aether menu              - Pick a variant and browse records interactively
//	aether slots             - Show or clear save slots
//	aether scores [variant]  - Show high scores
//	aether serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.aether/aether.db)
//	--backend <name>     - Save backend: sqlite, gdata or memory
//	--config <path>      - Custom tuning YAML
//	--difficulty <name>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aether-knight/internal/games/aether"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagBackend    string
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
	Use:   "aether",
	Short: "Aether Knight - fight the storm in your terminal",
	Long: `Aether Knight is a terminal arcade brawler. Cut through waves of
enemies, topple a boss every ten levels, pick a reward and dodge the
lightning. Progress is kept in save slots with one continue per checkpoint.

Available commands:
  list     - Show the rule sets
  play     - Play directly
  menu     - Interactive variant picker and records
  slots    - Inspect or clear save slots
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  aether play
  aether play aether_classic --difficulty hard
  aether play --slot 2 --backend gdata
  aether serve --ssh :2222`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		aether.SetConfigPath(flagConfig)
		aether.SetDifficultyPreset(flagDifficulty)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.aether/aether.db", "Path to the scores and saves database")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", backendSQLite, "Save backend: sqlite, gdata, memory")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
