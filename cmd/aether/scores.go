package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aether-knight/internal/registry"
	"github.com/vovakirdan/aether-knight/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresStats bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top high scores of a variant (default "aether").

Examples:
  aether scores
  aether scores aether_classic --limit 20
  aether scores --stats
  aether scores aether --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show totals for every variant")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the variant's scores")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresStats {
		printStats(store)
		return
	}

	gameID := "aether"
	if len(args) == 1 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'aether list' to see available variants.")
		os.Exit(1)
	}
	title := game.Title()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Scores of %s cleared.\n", title)
		return
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'aether play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %-4s  %-4s  %s\n", "Rank", "Player", "Score", "LV", "Wave", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %-4s  %-4s  %s\n", "----", "------", "-----", "--", "----", "----")

	for i, e := range scores {
		fmt.Printf("  %-4d  %-12s  %-10d  %-4d  %-4d  %s\n",
			i+1, e.Player, e.Score, e.Level, e.Wave, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}

func printStats(store *storage.Store) {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-16s  %-6s  %-10s  %-9s  %-9s  %s\n", "Variant", "Games", "Best", "Best wave", "Average", "Last played")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-16s  %-6d  %-10d  %-9d  %-9.0f  %s\n",
			id, s.GamesCount, s.HighScore, s.BestWave, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
