package markup

import "bytes"

// Flatten reconstructs the exact text the deck was parsed from.
func Flatten(deck *Deck) []byte {
	var buf bytes.Buffer
	buf.Write(deck.Preamble.Text)
	for _, card := range deck.Cards {
		buf.Write(FlattenCard(card))
	}
	buf.Write(deck.Last.Text)
	return buf.Bytes()
}

// FlattenCard reconstructs the text of a single card including its separators.
func FlattenCard(card *Card) []byte {
	var buf bytes.Buffer
	buf.Write(card.FrontMarker.Text)
	buf.Write(card.Front)
	buf.Write(card.BackMarker.Text)
	buf.Write(card.Back)
	return buf.Bytes()
}
