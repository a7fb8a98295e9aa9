package core

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cellularmitosis/retainn/internal/markup"
	"github.com/cellularmitosis/retainn/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDiff(t *testing.T) {
	path := SetUpFromGoldenDeckNamed(t, "Capitals.md")

	deck, err := ImportDeck(context.Background(), path)
	require.NoError(t, err)

	existing, err := CurrentDB().ExistingFingerprints(deck.OID)
	require.NoError(t, err)
	assert.Equal(t, NewFingerprintSet(
		CardFingerprint([]byte("France?"), []byte("Paris")),
		CardFingerprint([]byte("Italy?"), []byte("Rome")),
		CardFingerprint([]byte("Spain?"), []byte("Madrid")),
	), existing)

	cards := mustParseCards(t, string(testutil.GoldenFileNamed(t, "CapitalsUpdated.md")))
	diff := Synchronize(existing, cards)
	require.NoError(t, CurrentDB().ApplyDiff(deck.OID, diff))

	actual, err := CurrentDB().ExistingFingerprints(deck.OID)
	require.NoError(t, err)
	assert.Equal(t, fingerprintsOf(cards), actual)

	// Empty diffs are no-op
	require.NoError(t, CurrentDB().ApplyDiff(deck.OID, Synchronize(actual, cards)))
	assert.Equal(t, 4, mustCountCards(t))
}

func TestApplyDiffIsAtomic(t *testing.T) {
	path := SetUpFromGoldenDeckNamed(t, "Capitals.md")

	deck, err := ImportDeck(context.Background(), path)
	require.NoError(t, err)
	existing, err := CurrentDB().ExistingFingerprints(deck.OID)
	require.NoError(t, err)

	// Inserting an already stored card violates the unique constraint
	diff := &Diff{
		ToDelete: NewFingerprintSet(CardFingerprint([]byte("France?"), []byte("Paris"))),
		ToInsert: []*markup.Card{{Front: []byte("Italy?"), Back: []byte("Rome")}},
	}
	err = CurrentDB().ApplyDiff(deck.OID, diff)
	require.Error(t, err)

	// The deletion was rolled back
	actual, err := CurrentDB().ExistingFingerprints(deck.OID)
	require.NoError(t, err)
	assert.Equal(t, existing, actual)
}

func TestApplyDiffLargeDeck(t *testing.T) {
	SetUpFromTempDir(t)

	var sb strings.Builder
	sb.WriteString("# Numbers")
	for i := 0; i < 2*maxDeleteBatch+10; i++ {
		sb.WriteString(fmt.Sprintf("\n\n---\n\n%d + 1?\n\n%%\n\n%d", i, i+1))
	}
	sb.WriteString("\n\n---\n")
	path := testutil.SetUpFromFileContent(t, "numbers.md", sb.String())

	deck, err := ImportDeck(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2*maxDeleteBatch+10, mustCountCards(t))

	// Remove every card
	existing, err := CurrentDB().ExistingFingerprints(deck.OID)
	require.NoError(t, err)
	diff := Synchronize(existing, mustParseCards(t, "# Numbers\n\n---\n\nQ\n\n%\n\nA\n\n---\n"))
	require.Len(t, diff.ToDelete, 2*maxDeleteBatch+10)
	require.NoError(t, CurrentDB().ApplyDiff(deck.OID, diff))
	assert.Equal(t, 1, mustCountCards(t))
}

func TestCountCardsByDeckOID(t *testing.T) {
	path := SetUpFromGoldenDeckNamed(t, "Capitals.md")

	deck, err := ImportDeck(context.Background(), path)
	require.NoError(t, err)

	count, err := CountCardsByDeckOID(deck.OID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
