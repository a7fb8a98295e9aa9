package main

import (
	"errors"
	"testing"

	"github.com/cellularmitosis/retainn/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestFormatUpdateResult(t *testing.T) {
	deck := &core.Deck{Title: "Capitals", URL: "https://example.com/capitals.md"}

	tests := []struct {
		name     string
		result   *core.UpdateResult
		expected string
	}{
		{
			name:     "failure",
			result:   &core.UpdateResult{Deck: deck, Err: errors.New("boom")},
			expected: "✗ Capitals: boom",
		},
		{
			name:     "unchanged",
			result:   &core.UpdateResult{Deck: deck, Skipped: true},
			expected: "= Capitals: up to date",
		},
		{
			name: "updated",
			result: &core.UpdateResult{Deck: deck, Diff: &core.Diff{
				ToDelete: core.NewFingerprintSet("a.b"),
			}},
			expected: "✓ Capitals: 0 card(s) to insert, 1 card(s) to delete",
		},
		{
			name:     "deck without title",
			result:   &core.UpdateResult{Deck: &core.Deck{URL: "/tmp/raw.md"}, Skipped: true},
			expected: "= /tmp/raw.md: up to date",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatUpdateResult(tt.result))
		})
	}
}
