package markdown

import "strings"

// IsHeading returns if a given line is a Markdown heading, its title and its level.
func IsHeading(line string) (bool, string, int) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return false, "", 0
	}
	if level == len(line) || line[level] != ' ' {
		// "#hashtag" is not a heading
		return false, "", 0
	}
	return true, strings.TrimSpace(line[level+1:]), level
}
