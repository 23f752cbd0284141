package html

import (
	"strings"
	"unicode/utf8"

	xhtml "golang.org/x/net/html"
)

// EscapeText escapes text for inclusion in HTML content. Ampersands, angle
// brackets and double quotes become entities, single quotes are kept and
// invalid UTF-8 sequences are replaced with U+FFFD.
func EscapeText(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size == 1:
			buf.WriteRune(utf8.RuneError)
		case r == '&':
			buf.WriteString("&amp;")
		case r == '<':
			buf.WriteString("&lt;")
		case r == '>':
			buf.WriteString("&gt;")
		case r == '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// EscapeAttributeValue escapes a double-quoted attribute value. Only double
// quotes and ampersands are escaped, and an ampersand that already starts a
// character reference is left alone, so escaping twice is a no-op.
func EscapeAttributeValue(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			buf.WriteRune(utf8.RuneError)
		case r == '"':
			buf.WriteString("&quot;")
		case r == '&':
			if n := entityLength(s[i:]); n > 0 {
				buf.WriteString(s[i : i+n])
				i += n
				continue
			}
			buf.WriteString("&amp;")
		default:
			buf.WriteRune(r)
		}
		i += size
	}

	return buf.String()
}

// maxEntityLength bounds the search for the terminating semicolon.
const maxEntityLength = 33

// entityLength returns the length of the character reference at the start
// of s, or 0 if s does not start with one.
func entityLength(s string) int {
	end := strings.IndexByte(s, ';')
	if end < 2 || end > maxEntityLength {
		return 0
	}
	body := s[1:end]

	if body[0] == '#' {
		digits := body[1:]
		hex := false
		if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
			digits = digits[1:]
			hex = true
		}
		if digits == "" {
			return 0
		}
		for _, c := range digits {
			if !isDigit(c) && !(hex && isHexLetter(c)) {
				return 0
			}
		}
		return end + 1
	}

	for j, c := range body {
		if !isLetter(c) && (j == 0 || !isDigit(c)) {
			return 0
		}
	}
	candidate := s[:end+1]
	if xhtml.UnescapeString(candidate) == candidate {
		return 0
	}
	return end + 1
}

func isDigit(c rune) bool     { return c >= '0' && c <= '9' }
func isHexLetter(c rune) bool { return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
func isLetter(c rune) bool    { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
