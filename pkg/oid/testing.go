package oid

import "testing"

// UseSequence generates numbered OIDs until the end of the test.
func UseSequence(t *testing.T) {
	generator = NewSequenceGenerator()
	t.Cleanup(Reset)
}
