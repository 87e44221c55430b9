package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aether-knight/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rule sets",
	Long:  `Shows every registered variant of Aether Knight.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	idW, titleW := len("ID"), len("Title")
	for _, g := range games {
		idW = max(idW, len(g.ID))
		titleW = max(titleW, len(g.Title))
	}

	row := func(id, title, summary string) {
		fmt.Printf("  %-*s  %-*s  %s\n", idW, id, titleW, title, summary)
	}
	row("ID", "Title", "Rules")
	row("--", "-----", "-----")
	for _, g := range games {
		row(g.ID, g.Title, g.Summary)
	}

	fmt.Println()
	fmt.Println("Run 'aether play <id>' to play.")
}
