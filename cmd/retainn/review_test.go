package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cellularmitosis/retainn/internal/core"
	"github.com/cellularmitosis/retainn/pkg/clock"
	"github.com/cellularmitosis/retainn/pkg/oid"
)

func setUpCapitals(t *testing.T) *core.Deck {
	oid.UseSequence(t)
	path := core.SetUpFromGoldenDeckNamed(t, "Capitals.md")
	deck, err := core.ImportDeck(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, deck.LoadCards())
	require.Len(t, deck.Cards, 3)
	return deck
}

func TestReviewPlain(t *testing.T) {
	deck := setUpCapitals(t)
	session := NewReviewSession(clock.Now(), 0)

	in := strings.NewReader(strings.Join([]string{
		"", "r", // France
		"", "maybe", "f", // Italy
		"", "s", // Spain
	}, "\n") + "\n")
	var out bytes.Buffer
	err := ReviewPlain(in, &out, session)
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "[Capitals]\n\nFrance?")
	assert.Contains(t, output, "Paris")
	// Invalid answers are asked again
	assert.Equal(t, 4, strings.Count(output, "(r)ecall, (f)orget, (s)kip or (q)uit?"))
	assert.Contains(t, output, "No more cards to review. 3 card(s) reviewed.")

	scores := map[string]int{}
	require.NoError(t, deck.LoadCards())
	for _, card := range deck.Cards {
		scores[card.Front] = card.Score
		assert.False(t, card.LastSeenAt.IsZero())
	}
	assert.Equal(t, map[string]int{"France?": 1, "Italy?": -1, "Spain?": 0}, scores)
}

func TestReviewPlainQuit(t *testing.T) {
	setUpCapitals(t)
	session := NewReviewSession(clock.Now(), 0)

	var out bytes.Buffer
	err := ReviewPlain(strings.NewReader("\nr\n\nq\n"), &out, session)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "1 card(s) reviewed.")
	assert.Equal(t, 1, session.Reviewed())
}

func TestReviewPlainEndOfInput(t *testing.T) {
	setUpCapitals(t)
	session := NewReviewSession(clock.Now(), 0)

	var out bytes.Buffer
	err := ReviewPlain(strings.NewReader(""), &out, session)
	require.NoError(t, err)
	assert.Equal(t, 0, session.Reviewed())
}

func TestReviewSessionLimit(t *testing.T) {
	setUpCapitals(t)
	session := NewReviewSession(clock.Now(), 2)

	for i := 0; i < 2; i++ {
		card, err := session.Next()
		require.NoError(t, err)
		require.NotNil(t, card)
		require.NoError(t, session.Answer(card, core.AnswerRecall))
		assert.Equal(t, 1, card.Score)
	}

	card, err := session.Next()
	require.NoError(t, err)
	assert.Nil(t, card)
	assert.Equal(t, 2, session.Reviewed())
}

func TestReviewSessionPresentsEachCardOnce(t *testing.T) {
	setUpCapitals(t)
	session := NewReviewSession(clock.Now(), 0)

	seen := map[oid.OID]bool{}
	for {
		card, err := session.Next()
		require.NoError(t, err)
		if card == nil {
			break
		}
		assert.False(t, seen[card.OID])
		seen[card.OID] = true
		require.NoError(t, session.Answer(card, core.AnswerForget))
	}
	assert.Len(t, seen, 3)
}

func TestAnswerFromShortcut(t *testing.T) {
	assert.Equal(t, core.AnswerRecall, answerFromShortcut("r"))
	assert.Equal(t, core.AnswerRecall, answerFromShortcut("recall"))
	assert.Equal(t, core.AnswerForget, answerFromShortcut("n"))
	assert.Equal(t, core.AnswerSkip, answerFromShortcut("skip"))
	assert.Equal(t, core.Answer(""), answerFromShortcut("maybe"))
}
