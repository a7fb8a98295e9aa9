package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTitle(t *testing.T) {
	var tests = []struct {
		name     string
		preamble string
		title    string
		found    bool
	}{
		{"Single heading", "# Title", "Title", true},
		{"Subheading", "## Subtitle", "Subtitle", true},
		{"After a metadata line", "format: md1\n# Some Deck\n\nA deck with some cards", "Some Deck", true},
		{"First heading wins", "# First\n## Second", "First", true},
		{"Extra spaces", "#    Spaced out", "Spaced out", true},
		{"Windows line endings", "# Title\r\nText", "Title", true},
		{"Missing space", "#Title", "itle", true}, // The first non-hash character is always skipped
		{"Hashes only", "###", "", false},
		{"No heading", "Just some text\nwith lines", "", false},
		{"Indented heading", "  # Not a heading", "", false},
		{"Empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, found := ExtractTitle([]byte(tt.preamble))
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.title, title)
		})
	}
}
