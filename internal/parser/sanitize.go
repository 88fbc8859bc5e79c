package parser

import (
	"regexp"
	"strings"
)

// forbiddenFilenameChars matches every character that cannot appear in a
// filename on common filesystems, plus embedded newlines.
var forbiddenFilenameChars = regexp.MustCompile(`[\\/:*?"<>|` + "\n\r" + `]`)

// SanitizeFilename converts arbitrary extracted text into a filesystem-safe
// name. Each forbidden character becomes an underscore.
func SanitizeFilename(s string) string {
	return strings.TrimSpace(forbiddenFilenameChars.ReplaceAllString(s, "_"))
}

var newlineStripper = strings.NewReplacer("\n", "", "\r", "")

// NormalizeForCompare produces a case- and whitespace-insensitive comparison
// key for title matching. Never used for display or storage.
func NormalizeForCompare(s string) string {
	return strings.ToLower(strings.TrimSpace(newlineStripper.Replace(s)))
}
