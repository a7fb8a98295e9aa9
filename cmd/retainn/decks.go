package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cellularmitosis/retainn/internal/core"
	"github.com/cellularmitosis/retainn/pkg/oid"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(decksCmd)
}

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List decks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		decks, err := core.FindDecks()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		counts := make(map[oid.OID]int)
		for _, deck := range decks {
			count, err := core.CountCardsByDeckOID(deck.OID)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			counts[deck.OID] = count
		}
		fmt.Print(FormatDecks(decks, counts))
	},
}

// FormatDecks prints one line per deck with its short OID, slug, card count and URL.
func FormatDecks(decks []*core.Deck, counts map[oid.OID]int) string {
	if len(decks) == 0 {
		return "No deck. Use \"retainn import <url>\" to add one.\n"
	}

	slugWidth := 0
	for _, deck := range decks {
		slugWidth = max(slugWidth, len(deck.Slug))
	}

	var sb strings.Builder
	for _, deck := range decks {
		fmt.Fprintf(&sb, "%s  %-*s  %4d cards  %s\n",
			deck.OID.Short(), slugWidth, deck.Slug, counts[deck.OID], deck.URL)
	}
	return sb.String()
}
