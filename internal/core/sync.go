package core

import (
	"fmt"

	"github.com/cellularmitosis/retainn/internal/markup"
)

// Diff lists the changes to apply to the stored cards of a deck.
type Diff struct {
	// Fingerprints of stored cards no longer present in the deck
	ToDelete FingerprintSet
	// Cards not stored yet, in deck order, one per fingerprint
	ToInsert []*markup.Card
}

// Empty returns if applying the diff would change nothing.
func (d *Diff) Empty() bool {
	return len(d.ToDelete) == 0 && len(d.ToInsert) == 0
}

func (d *Diff) String() string {
	return fmt.Sprintf("%d card(s) to insert, %d card(s) to delete", len(d.ToInsert), len(d.ToDelete))
}

// Synchronize compares the fingerprints of the stored cards with the parsed cards.
// Cards present on both sides are left untouched, which preserves their review history.
func Synchronize(existing FingerprintSet, cards []*markup.Card) *Diff {
	current := make(FingerprintSet, len(cards))
	diff := &Diff{
		ToDelete: make(FingerprintSet),
	}
	for _, card := range cards {
		fingerprint := CardFingerprint(card.Front, card.Back)
		if current.Contains(fingerprint) {
			// Duplicate card: the first occurrence wins
			continue
		}
		current.Add(fingerprint)
		if !existing.Contains(fingerprint) {
			diff.ToInsert = append(diff.ToInsert, card)
		}
	}
	for fingerprint := range existing {
		if !current.Contains(fingerprint) {
			diff.ToDelete.Add(fingerprint)
		}
	}
	return diff
}

// UniqueCards returns the cards deduplicated by fingerprint, in deck order.
func UniqueCards(cards []*markup.Card) []*markup.Card {
	return Synchronize(NewFingerprintSet(), cards).ToInsert
}
