package utils

import (
	"regexp"
	"strings"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// SanitizeFilename turns a deck name into a safe .apkg filename stem. Deck
// names may contain "::" hierarchy separators and arbitrary punctuation,
// none of which belongs in a filename.
func SanitizeFilename(name string) string {
	// "::"-nested deck names keep only the leaf segment
	if idx := strings.LastIndex(name, "::"); idx != -1 {
		name = name[idx+2:]
	}

	// Remove invalid filename characters
	name = invalidFilenameChars.ReplaceAllString(name, "")

	// Replace newlines/tabs with spaces
	name = whitespaceChars.ReplaceAllString(name, " ")

	// Collapse multiple spaces
	name = multipleSpaces.ReplaceAllString(name, " ")

	// Trim whitespace
	name = strings.TrimSpace(name)

	// Limit length (most filesystems support 255, but leave room for extension)
	if len(name) > 200 {
		name = strings.TrimSpace(name[:200])
	}

	// Ensure it's not empty
	if name == "" {
		name = "deck"
	}

	return name
}
