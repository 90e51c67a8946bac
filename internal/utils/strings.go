package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// HasAlpha reports whether a string contains at least one letter.
// Corpus lines without a single letter are not worth indexing.
func HasAlpha(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// NormalizeWord lowercases and trims a word for trie storage and lookup
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// FormatWithCommas renders an integer with thousands separators for display
func FormatWithCommas(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
