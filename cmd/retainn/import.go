package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cellularmitosis/retainn/internal/core"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <url>...",
	Short: "Import decks",
	Long:  `Import decks from HTTP URLs, local files, s3:// or sj:// objects.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failed := false
		for _, deckURL := range args {
			deck, err := core.ImportDeck(context.Background(), deckURL)
			if err != nil {
				fmt.Println(err)
				failed = true
				continue
			}
			count, err := core.CountCardsByDeckOID(deck.OID)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			fmt.Printf("Imported %q (%d cards) as %s\n", deck.DisplayName(), count, deck.Slug)
		}
		if failed {
			os.Exit(1)
		}
	},
}
