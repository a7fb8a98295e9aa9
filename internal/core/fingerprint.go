package core

import (
	"slices"

	"github.com/cellularmitosis/retainn/internal/helpers"
)

// Fingerprint identifies a card by its content.
// Two cards with the same front and back share the same fingerprint.
type Fingerprint string

// CardFingerprint returns the fingerprint of a card.
func CardFingerprint(front, back []byte) Fingerprint {
	return Fingerprint(helpers.Hash(front) + "." + helpers.Hash(back))
}

// DeckFingerprint returns the hash of the raw deck text.
func DeckFingerprint(raw []byte) string {
	return helpers.Hash(raw)
}

// FingerprintSet is an unordered set of fingerprints.
type FingerprintSet map[Fingerprint]struct{}

func NewFingerprintSet(fingerprints ...Fingerprint) FingerprintSet {
	result := make(FingerprintSet, len(fingerprints))
	for _, fingerprint := range fingerprints {
		result.Add(fingerprint)
	}
	return result
}

func (s FingerprintSet) Add(fingerprint Fingerprint) {
	s[fingerprint] = struct{}{}
}

func (s FingerprintSet) Contains(fingerprint Fingerprint) bool {
	_, ok := s[fingerprint]
	return ok
}

// Sorted returns the fingerprints in lexicographic order.
func (s FingerprintSet) Sorted() []Fingerprint {
	result := make([]Fingerprint, 0, len(s))
	for fingerprint := range s {
		result = append(result, fingerprint)
	}
	slices.Sort(result)
	return result
}
