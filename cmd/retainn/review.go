package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cellularmitosis/retainn/internal/core"
	"github.com/cellularmitosis/retainn/pkg/clock"
	"github.com/cellularmitosis/retainn/pkg/markdown"
	"github.com/spf13/cobra"
)

var plain bool
var limit int

func init() {
	reviewCmd.Flags().BoolVarP(&plain, "plain", "", false, "Use a line-based prompt instead of the interactive UI")
	reviewCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of cards to review (default from review.session_limit)")
	rootCmd.AddCommand(reviewCmd)
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review cards",
	Long:  `Review the cards of all decks, the least known cards first.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if limit <= 0 {
			limit = core.CurrentConfig().ConfigFile.Review.SessionLimit
		}
		session := NewReviewSession(clock.Now(), limit)

		var err error
		if plain {
			err = ReviewPlain(os.Stdin, os.Stdout, session)
		} else {
			err = ReviewInteractive(session)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

// Reviewer drives a review session.
type Reviewer interface {
	// Next returns the card to review or nil when the session is over.
	Next() (*core.Card, error)
	// Answer records the answer for the card.
	Answer(card *core.Card, answer core.Answer) error
	// Reviewed returns the number of answered cards.
	Reviewed() int
}

// ReviewSession presents each card at most once.
type ReviewSession struct {
	start    time.Time
	limit    int
	reviewed int
}

// NewReviewSession starts a session. A zero limit means no limit.
func NewReviewSession(start time.Time, limit int) *ReviewSession {
	return &ReviewSession{
		start: start,
		limit: limit,
	}
}

func (s *ReviewSession) Next() (*core.Card, error) {
	if s.limit > 0 && s.reviewed >= s.limit {
		return nil, nil
	}
	return core.NextCard(s.start)
}

func (s *ReviewSession) Answer(card *core.Card, answer core.Answer) error {
	reviewed, err := core.Review(card.OID, answer)
	if err != nil {
		return err
	}
	*card = *reviewed
	s.reviewed++
	return nil
}

func (s *ReviewSession) Reviewed() int {
	return s.reviewed
}

// ReviewPlain runs a session reading answers line by line.
func ReviewPlain(in io.Reader, out io.Writer, reviewer Reviewer) error {
	scanner := bufio.NewScanner(in)
	prompt := func(message string) (string, bool) {
		fmt.Fprint(out, message)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	for {
		card, err := reviewer.Next()
		if err != nil {
			return err
		}
		if card == nil {
			break
		}

		fmt.Fprintf(out, "\n[%s]\n\n%s\n\n", card.DeckTitle, markdown.ToText(card.Front))
		if _, ok := prompt("Press Enter to show the answer..."); !ok {
			return scanner.Err()
		}
		fmt.Fprintf(out, "\n%s\n\n", markdown.ToText(card.Back))

		var answer core.Answer
		for answer == "" {
			line, ok := prompt("(r)ecall, (f)orget, (s)kip or (q)uit? ")
			if !ok {
				return scanner.Err()
			}
			if line == "q" {
				fmt.Fprintf(out, "%d card(s) reviewed.\n", reviewer.Reviewed())
				return nil
			}
			answer = answerFromShortcut(line)
		}
		if err := reviewer.Answer(card, answer); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "\nNo more cards to review. %d card(s) reviewed.\n", reviewer.Reviewed())
	return nil
}

func answerFromShortcut(value string) core.Answer {
	switch value {
	case "r", "y":
		return core.AnswerRecall
	case "f", "n":
		return core.AnswerForget
	case "s":
		return core.AnswerSkip
	}
	answer, err := core.ParseAnswer(value)
	if err != nil {
		return ""
	}
	return answer
}
