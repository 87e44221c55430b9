package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/aether-knight/internal/config"
	"github.com/vovakirdan/aether-knight/internal/games/aether/saves"
	"github.com/vovakirdan/aether-knight/internal/platform/tui"
	"github.com/vovakirdan/aether-knight/internal/storage"
)

var flagSlotsUser string

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Show save slots",
	Long: `Lists the save slots with their level, wave and score, the active
slot and whether a continue is available.

Examples:
  aether slots
  aether slots --backend gdata
  aether slots --user alice      # slots of an SSH player
  aether slots clear 2`,
	Args: cobra.NoArgs,
	Run:  runSlots,
}

var slotsClearCmd = &cobra.Command{
	Use:   "clear <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	Run:   runSlotsClear,
}

func init() {
	slotsCmd.PersistentFlags().StringVar(&flagSlotsUser, "user", "", "Show the slots of an SSH user")
	slotsCmd.AddCommand(slotsClearCmd)
}

// openSlots opens the slot manager of the selected backend and user.
func openSlots() (*saves.Slots, stores) {
	st, err := openStores(log.New(io.Discard))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	kv := st.saves
	if flagSlotsUser != "" {
		kv = storage.Prefixed(kv, tui.UserPrefix(flagSlotsUser))
	}

	cfg, err := config.LoadAether(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return saves.NewSlotsFor(kv, cfg), st
}

func runSlots(_ *cobra.Command, _ []string) {
	slots, st := openSlots()
	defer st.Close()

	active, err := slots.ActiveSlot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading slots: %v\n", err)
		os.Exit(1)
	}
	token, _ := slots.Token()
	pending, _ := slots.DeathPending()

	fmt.Println("Save slots")
	fmt.Println()
	fmt.Printf("  %-4s  %-6s  %-5s  %-11s  %s\n", "Slot", "Level", "Wave", "Score", "Saved")
	fmt.Printf("  %-4s  %-6s  %-5s  %-11s  %s\n", "----", "-----", "----", "-----", "-----")

	for _, s := range slots.Summaries() {
		marker := " "
		if s.Slot == active {
			marker = "*"
		}
		if s.Empty {
			fmt.Printf("%s %-4d  %-6s  %-5s  %-11s\n", marker, s.Slot, "-", "-", "EMPTY")
			continue
		}
		fmt.Printf("%s %-4d  %-6d  %-5d  %-11d  %s\n",
			marker, s.Slot, s.Level, s.Wave, s.Score, s.SavedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Active slot: %d\n", active)
	fmt.Printf("Continue available: %t\n", token)
	if pending {
		fmt.Println("A game over is waiting for a continue.")
	}
}

func runSlotsClear(_ *cobra.Command, args []string) {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid slot %q\n", args[0])
		os.Exit(1)
	}

	slots, st := openSlots()
	defer st.Close()

	if !slots.Valid(n) {
		fmt.Fprintf(os.Stderr, "Error: slot must be between 1 and %d\n", slots.Count())
		os.Exit(1)
	}
	if err := slots.Clear(n); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing slot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Slot %d cleared.\n", n)
}
