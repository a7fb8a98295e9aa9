package markup

import (
	"regexp"
	"strings"
)

// Some number of hashes followed by a non-hash.
var reTitle = regexp.MustCompile(`^#+[^#]\s*(.*)$`)

// ExtractTitle returns the text of the first heading found in the preamble.
func ExtractTitle(preamble []byte) (string, bool) {
	for _, line := range strings.Split(string(preamble), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if match := reTitle.FindStringSubmatch(line); match != nil {
			return match[1], true
		}
	}
	return "", false
}
