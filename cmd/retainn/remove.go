package main

import (
	"fmt"
	"os"

	"github.com/cellularmitosis/retainn/internal/core"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <deck>...",
	Aliases: []string{"rm"},
	Short:   "Remove decks",
	Long:    `Remove decks and the review history of their cards.`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, ref := range args {
			deck, err := core.RemoveDeck(ref)
			if err != nil {
				fmt.Printf("%s: %v\n", ref, err)
				os.Exit(1)
			}
			fmt.Printf("Removed %q\n", deck.DisplayName())
		}
	},
}
