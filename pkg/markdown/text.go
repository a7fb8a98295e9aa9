package markdown

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// How many spaces to indent headings per level
const indentHeading = 2

// How many spaces to indent code blocks
const indentCode = 4

var (
	reBoldAsterisks     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reBoldUnderscores   = regexp.MustCompile(`__(.*?)__`)
	reItalicAsterisks   = regexp.MustCompile(`\*(.*?)\*`)
	reItalicUnderscores = regexp.MustCompile(`\b_(.*?)_\b`)
	reInlineCode        = regexp.MustCompile("`([^`]+)`")
	reLink              = regexp.MustCompile(`(^|[^!])\[(.*?)\]\((.*?)\)`)
	reImage             = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	reAutoLink          = regexp.MustCompile(`<((?:https?://|mailto:)?[^<>\s]+[@.][^<>\s]+)>`)
)

// ToText renders Markdown for a terminal.
// Code blocks are kept verbatim (indented) as they often matter on flashcards.
func ToText(md string) string {
	var res strings.Builder
	insideCode := false
	insideQuote := false
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "```") {
			insideCode = !insideCode
			continue
		}
		if insideCode {
			res.WriteString(strings.Repeat(" ", indentCode))
			res.WriteString(line)
			res.WriteString("\n")
			continue
		}

		if ok, title, level := IsHeading(line); ok {
			title = inlineToText(title)
			switch level {
			case 1:
				res.WriteString(title + "\n" + strings.Repeat("=", utf8.RuneCountInString(title)))
			case 2:
				res.WriteString(title + "\n" + strings.Repeat("-", utf8.RuneCountInString(title)))
			default:
				res.WriteString(strings.Repeat(" ", (level-2)*indentHeading) + title)
			}
			res.WriteString("\n")
			continue
		}

		if strings.HasPrefix(line, ">") {
			if !insideQuote {
				res.WriteRune('"')
			}
			res.WriteString(inlineToText(strings.TrimSpace(strings.TrimPrefix(line, ">"))))
			if i == len(lines)-1 || !strings.HasPrefix(lines[i+1], ">") {
				// end the quote
				res.WriteRune('"')
				insideQuote = false
			} else {
				// remember the quote is not finished
				insideQuote = true
			}
			res.WriteString("\n")
			continue
		}

		res.WriteString(inlineToText(line))
		res.WriteString("\n")
	}
	return strings.TrimSpace(res.String())
}

func inlineToText(line string) string {
	line = reBoldAsterisks.ReplaceAllString(line, "$1")
	line = reBoldUnderscores.ReplaceAllString(line, "$1")
	line = reItalicAsterisks.ReplaceAllString(line, "$1")
	line = reItalicUnderscores.ReplaceAllString(line, "$1")
	line = reInlineCode.ReplaceAllString(line, "$1")
	line = reImage.ReplaceAllString(line, "[$1]")
	line = reLink.ReplaceAllString(line, "$1$2 ($3)")
	line = reAutoLink.ReplaceAllString(line, "$1")
	return line
}
