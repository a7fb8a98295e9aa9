package oid_test

import (
	"encoding/hex"
	"testing"

	"github.com/cellularmitosis/retainn/pkg/oid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomOIDs(t *testing.T) {
	seen := make(map[oid.OID]bool)
	for i := 0; i < 100; i++ {
		id := oid.New()
		require.Len(t, id, 40)
		_, err := hex.DecodeString(id.String())
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestSequenceGenerator(t *testing.T) {
	gen := oid.NewSequenceGenerator()

	assert.Equal(t, oid.OID("0000000000000000000000000000000000000001"), gen.New())
	assert.Equal(t, oid.OID("0000000000000000000000000000000000000002"), gen.New())
}
