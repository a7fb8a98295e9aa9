package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cellularmitosis/retainn/internal/core"
)

var verboseInfo bool
var verboseDebug bool
var verboseTrace bool

var parallel int

var rootCmd = &cobra.Command{
	Use:   "retainn",
	Short: "retainn is a flashcard tool using plain Markdown decks",
	Long:  `Import Markdown decks from anywhere and review their cards from the terminal or the browser.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		CheckConfig()

		// Enable verbose output. The most verbose level wins when multiple flags are passsed.
		if verboseInfo {
			core.CurrentLogger().SetVerboseLevel(core.VerboseInfo)
		}
		if verboseDebug {
			core.CurrentLogger().SetVerboseLevel(core.VerboseDebug)
		}
		if verboseTrace {
			core.CurrentLogger().SetVerboseLevel(core.VerboseTrace)
		}
	},
}

func init() {
	// Use PersistentFlags to make flags accessible to sub-commands
	rootCmd.PersistentFlags().BoolVarP(&verboseInfo, "v", "", false, "enable verbose info output")
	rootCmd.PersistentFlags().BoolVarP(&verboseDebug, "vv", "", false, "enable verbose debug output")
	rootCmd.PersistentFlags().BoolVarP(&verboseTrace, "vvv", "", false, "enable verbose trace output")
}

func Execute() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		core.CurrentDB().Close()
		os.Exit(1)
	}()

	err := rootCmd.Execute()
	core.CurrentDB().Close()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func CheckConfig() {
	if err := core.CurrentConfig().Check(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// resolveDeck exits when the reference matches no deck or several decks.
func resolveDeck(ref string) *core.Deck {
	deck, err := core.ResolveDeck(ref)
	if err != nil {
		fmt.Printf("%s: %v\n", ref, err)
		os.Exit(1)
	}
	return deck
}

func main() {
	Execute()
}
