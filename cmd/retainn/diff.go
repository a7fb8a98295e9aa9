package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cellularmitosis/retainn/internal/core"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff <deck>",
	Short: "Show changes",
	Long:  `Show changes between the stored deck and its latest version without updating it.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deck := resolveDeck(args[0])
		diff, err := core.DiffDeck(context.Background(), deck)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if diff.Patch == "" {
			fmt.Printf("%s is up to date.\n", deck.DisplayName())
			return
		}
		printDiff(diff.Patch)
		fmt.Println(diff.Diff)
	},
}

func printDiff(diff string) {
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			color.Red(line)
		} else if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			color.Green(line)
		} else if strings.HasPrefix(line, "@@") {
			color.Cyan(line)
		} else {
			fmt.Println(line)
		}
	}
}
