package markdown_test

import (
	"testing"

	"github.com/cellularmitosis/retainn/pkg/markdown"
	"github.com/cellularmitosis/retainn/pkg/text"
	"github.com/stretchr/testify/assert"
)

func TestToHTML(t *testing.T) {
	var tests = []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Paragraph",
			input:    "What is the capital of **France**?",
			expected: "<p>What is the capital of <strong>France</strong>?</p>",
		},
		{
			name:     "Code block",
			input:    "”””\n<b>\n”””",
			expected: "<pre><code>&lt;b&gt;\n</code></pre>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := markdown.ToHTML(text.UnescapeTestContent(tt.input))
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestToHTMLLinksOpenNewTab(t *testing.T) {
	actual := markdown.ToHTML("[Go](https://go.dev)")
	assert.Contains(t, actual, `href="https://go.dev"`)
	assert.Contains(t, actual, `target="_blank"`)
}

func TestToHTMLDropsRawHTML(t *testing.T) {
	var tests = []struct {
		name      string
		input     string
		forbidden []string
	}{
		{
			name:      "Inline script",
			input:     "Q <script>alert(1)</script>",
			forbidden: []string{"<script", "</script>"},
		},
		{
			name:      "Event handler",
			input:     "Q\n\n<img src=x onerror=alert(2)>",
			forbidden: []string{"onerror", "<img"},
		},
		{
			name:      "HTML block",
			input:     "<div onclick=\"alert(3)\">\nBoom\n</div>",
			forbidden: []string{"onclick", "<div"},
		},
		{
			name:      "Javascript link",
			input:     "[click](javascript:alert(4))",
			forbidden: []string{"<a ", "href"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := markdown.ToHTML(tt.input)
			for _, forbidden := range tt.forbidden {
				assert.NotContains(t, actual, forbidden)
			}
		})
	}
}
