package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"
)

// Hash computes a SHA-256 hex hash of a string for deduplication.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// Truncate shortens a string to maxLen, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

var (
	unsafeChars    = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	repeatedUnders = regexp.MustCompile(`_+`)
)

// SanitizeFilename replaces spaces and special characters so the name is safe
// to use in terminals and cache-directory paths ("Sustainability City v3" →
// "Sustainability_City_v3").
func SanitizeFilename(name string) string {
	s := unsafeChars.ReplaceAllString(name, "_")
	s = repeatedUnders.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// HasLowercaseLetter reports whether s contains at least one lowercase letter,
// a quick probe for "looks like prose rather than a constant or key".
func HasLowercaseLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}
