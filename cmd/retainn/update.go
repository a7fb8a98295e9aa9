package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cellularmitosis/retainn/internal/core"
	"github.com/cellularmitosis/retainn/pkg/console"
	"github.com/spf13/cobra"
)

func init() {
	updateCmd.Flags().IntVarP(&parallel, "parallel", "t", 0, "Number of decks to fetch concurrently")
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(updateDeckCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update [deck...]",
	Short: "Update decks",
	Long:  `Fetch the latest version of decks (all decks by default) and synchronize their cards.`,
	Run: func(cmd *cobra.Command, args []string) {
		var decks []*core.Deck
		if len(args) == 0 {
			var err error
			decks, err = core.FindDecks()
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		}
		for _, ref := range args {
			decks = append(decks, resolveDeck(ref))
		}
		if len(decks) == 0 {
			fmt.Println("No deck to update.")
			return
		}

		progress := console.NewProgressLog(len(decks), console.ShowPercent())
		progress.Log(0, "Fetching decks...")
		_, err := core.UpdateDecks(context.Background(), decks, parallel,
			core.OnUpdated(func(done int, total int, result *core.UpdateResult) {
				progress.Println(FormatUpdateResult(result))
				progress.Log(done, result.Deck.DisplayName())
			}))
		if err != nil {
			progress.Clear("Some decks could not be updated.")
			os.Exit(1)
		}
		progress.Clear(fmt.Sprintf("%d deck(s) updated.", len(decks)))
	},
}

var updateDeckCmd = &cobra.Command{
	Use:   "update-deck <deck>",
	Short: "Update a single deck",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deck := resolveDeck(args[0])
		result, err := core.UpdateDeck(context.Background(), deck)
		if err != nil {
			result = &core.UpdateResult{Deck: deck, Err: err}
		}
		fmt.Println(FormatUpdateResult(result))
		if err != nil {
			os.Exit(1)
		}
	},
}

// FormatUpdateResult summarizes the outcome of a deck update on a single line.
func FormatUpdateResult(result *core.UpdateResult) string {
	name := result.Deck.DisplayName()
	switch {
	case result.Err != nil:
		return fmt.Sprintf("✗ %s: %v", name, result.Err)
	case result.Skipped:
		return fmt.Sprintf("= %s: up to date", name)
	default:
		return fmt.Sprintf("✓ %s: %s", name, result.Diff)
	}
}
