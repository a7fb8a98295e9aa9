package oid_test

import (
	"regexp"
	"testing"

	"github.com/cellularmitosis/retainn/pkg/oid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reOID matches the Git commit ID format
var reOID = regexp.MustCompile(`^[0-9a-f]{40}$`)

func TestNewOID(t *testing.T) {
	oid1 := oid.New()
	oid2 := oid.New()
	require.NotEqual(t, oid1, oid2)
	assert.Regexp(t, reOID, oid1)
}

func TestOID(t *testing.T) {
	id := oid.OID("f3aaf5433ec0357844d88f860c42e044fe44ee61")
	assert.False(t, id.IsNil())
	assert.True(t, oid.Nil.IsNil())
	assert.Equal(t, "f3aaf543", id.Short())
	assert.Equal(t, "abc", oid.OID("abc").Short())
	assert.Equal(t, "f3aaf5433ec0357844d88f860c42e044fe44ee61", id.String())
}

func TestParse(t *testing.T) {
	assert.Equal(t, oid.OID("f3aaf5433ec0357844d88f860c42e044fe44ee61"), oid.MustParse("f3aaf5433ec0357844d88f860c42e044fe44ee61"))
	assert.Panics(t, func() { oid.MustParse("f3aaf543") })
	assert.Equal(t, oid.Nil, oid.ParseOrNil("my-deck"))
}

func TestUseSequence(t *testing.T) {
	oid.UseSequence(t)
	assert.Equal(t, oid.OID("0000000000000000000000000000000000000001"), oid.New())
	assert.Equal(t, oid.OID("0000000000000000000000000000000000000002"), oid.New())
}
