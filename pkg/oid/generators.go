package oid

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator creates OIDs. Tests swap it to get predictable values.
type Generator interface {
	New() OID
}

var generator Generator = randomGenerator{}

// Reset restores the random generator.
func Reset() {
	generator = randomGenerator{}
}

// randomGenerator returns 40 hexadecimal characters (the length of a Git object ID)
// taken from two random UUIDs.
type randomGenerator struct{}

func (randomGenerator) New() OID {
	first, second := uuid.New(), uuid.New()
	return OID(hex.EncodeToString(first[:]) + hex.EncodeToString(second[:4]))
}

// SequenceGenerator returns numbered OIDs. Cards imported from the same deck
// get increasing OIDs in the order of the deck.
type SequenceGenerator struct {
	mu    sync.Mutex
	count int
}

func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

func (g *SequenceGenerator) New() OID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.count++
	return OID(fmt.Sprintf("%040d", g.count))
}
