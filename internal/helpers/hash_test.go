package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	// Same content = same hash
	assert.Equal(t, Hash([]byte("same")), Hash([]byte("same")))
	// Different contents = different hashes
	assert.NotEqual(t, Hash([]byte("same")), Hash([]byte("different")))
	// Well-known value
	assert.Equal(t, "6cd3556deb0da54bca060b4c39479839", Hash([]byte("Hello, world!")))
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", Hash(nil))
}
