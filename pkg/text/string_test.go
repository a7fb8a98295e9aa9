package text_test

import (
	"testing"

	"github.com/cellularmitosis/retainn/pkg/text"
	"github.com/stretchr/testify/assert"
)

func TestIsBlank(t *testing.T) {
	assert.True(t, text.IsBlank(""))
	assert.True(t, text.IsBlank(" \t\n"))
	assert.False(t, text.IsBlank(" # Title "))
}

func TestTrimExtension(t *testing.T) {
	var tests = []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "File name",
			input:    "Capitals.md",
			expected: "Capitals",
		},
		{
			name:     "File path",
			input:    "decks/geography/Capitals.md",
			expected: "decks/geography/Capitals",
		},
		{
			name:     "No extension",
			input:    "raw",
			expected: "raw",
		},
		{
			name:     "Trailing separator",
			input:    "decks/",
			expected: "decks",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, text.TrimExtension(tt.input))
		})
	}
}
