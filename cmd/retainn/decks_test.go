package main

import (
	"strings"
	"testing"

	"github.com/cellularmitosis/retainn/internal/core"
	"github.com/cellularmitosis/retainn/pkg/oid"
	"github.com/stretchr/testify/assert"
)

func TestFormatDecks(t *testing.T) {
	capitals := &core.Deck{
		OID:  oid.MustParse("1111111111111111111111111111111111111111"),
		Slug: "capitals",
		URL:  "https://gist.github.com/someone/abc",
	}
	go1 := &core.Deck{
		OID:  oid.MustParse("2222222222222222222222222222222222222222"),
		Slug: "go",
		URL:  "/home/someone/decks/Go.md",
	}

	tests := []struct {
		name     string
		decks    []*core.Deck
		counts   map[oid.OID]int
		expected string
	}{
		{
			name:     "no deck",
			expected: `No deck. Use "retainn import <url>" to add one.`,
		},
		{
			name:  "several decks",
			decks: []*core.Deck{capitals, go1},
			counts: map[oid.OID]int{
				capitals.OID: 3,
				go1.OID:      12,
			},
			expected: `
11111111  capitals     3 cards  https://gist.github.com/someone/abc
22222222  go          12 cards  /home/someone/decks/Go.md
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := FormatDecks(tt.decks, tt.counts)
			assert.Equal(t, strings.TrimSpace(tt.expected), strings.TrimSpace(actual))
		})
	}
}
