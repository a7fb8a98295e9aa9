package markdown

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ToHTML renders a Markdown fragment (ex: the front of a card).
// Raw HTML is dropped and links are restricted to safe protocols.
func ToHTML(md string) string {
	// A new parser is required for every document
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML | html.Safelink,
	})
	out := markdown.ToHTML([]byte(md), p, renderer)
	return strings.TrimSpace(string(out))
}
