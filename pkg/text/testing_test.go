package text_test

import (
	"testing"

	"github.com/cellularmitosis/retainn/pkg/text"
	"github.com/stretchr/testify/assert"
)

func TestUnescapeTestContent(t *testing.T) {
	var tests = []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Fence with ”",
			input:    "”””go\nfmt.Println()\n”””",
			expected: "```go\nfmt.Println()\n```",
		},
		{
			name:     "Inline code with ‛",
			input:    "Use ‛%‛ to separate",
			expected: "Use `%` to separate",
		},
		{
			name:     "Both characters",
			input:    "”code‛",
			expected: "`code`",
		},
		{
			name:     "No special characters",
			input:    "# Capitals",
			expected: "# Capitals",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, text.UnescapeTestContent(tt.input))
		})
	}
}
