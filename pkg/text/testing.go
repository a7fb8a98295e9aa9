package text

import "strings"

// UnescapeTestContent supports content using a special character instead of backticks.
func UnescapeTestContent(content string) string {
	// Multiline strings in Go cannot contain backticks but card fronts and backs often do.
	//
	// Example: ”””go will become ```go
	result := strings.ReplaceAll(content, "”", "`")

	// We also allow the ‛ character
	result = strings.ReplaceAll(result, "‛", "`")

	return result
}
