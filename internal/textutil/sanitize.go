package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Sanitize strips HTML-like tags and disallowed characters from raw chat input
// and normalizes whitespace. It always returns a string, possibly empty.
func Sanitize(input string) string {
	s := tagPattern.ReplaceAllString(input, "")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if allowed(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// allowed keeps Hangul, ASCII letters/digits, whitespace and basic punctuation.
func allowed(r rune) bool {
	switch {
	case unicode.Is(unicode.Hangul, r):
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	}
	switch r {
	case '.', ',', '!', '?', '(', ')':
		return true
	}
	return false
}
