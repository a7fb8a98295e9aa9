package main

import (
	"fmt"
	"os"

	"github.com/cellularmitosis/retainn/internal/core"
	"github.com/cellularmitosis/retainn/internal/markup"
	"github.com/spf13/cobra"
)

var format string
var outDir string

func init() {
	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml, md or files)")
	showCmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory used with the files format")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <deck>",
	Short: "Show a deck",
	Long:  `Show a stored deck with its cards (yaml), its raw Markdown (md), or split it into files (files).`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deck := resolveDeck(args[0])
		if err := showDeck(deck, format, outDir); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func showDeck(deck *core.Deck, format string, outDir string) error {
	switch format {
	case "yaml":
		if err := deck.LoadCards(); err != nil {
			return err
		}
		out, err := deck.ToYAML()
		if err != nil {
			return err
		}
		fmt.Print(out)
	case "md":
		fmt.Print(deck.Body)
	case "files":
		parsed, err := markup.Parse([]byte(deck.Body))
		if err != nil {
			return fmt.Errorf("stored deck %s is invalid: %w", deck.Slug, err)
		}
		if err := markup.WriteDeckToDisk(parsed, outDir); err != nil {
			return err
		}
		fmt.Printf("%d card(s) written to %s\n", len(parsed.Cards), outDir)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}
