package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SanitizeForURL turns s into a URL slug: accents are folded to ASCII,
// everything is lowercased, runs of other characters become a single hyphen
// and leading/trailing hyphens are trimmed. The result only contains
// [a-z0-9-] and the function is idempotent.
func SanitizeForURL(s string) string {
	if s == "" {
		return ""
	}

	folded := foldAccents(s)

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// foldAccents decomposes s and drops combining marks ("é" becomes "e").
// Transformers keep state, so a fresh chain is built per call.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// SanitizeEmail lowercases the address and removes angle brackets and all
// whitespace, including internal whitespace.
func SanitizeEmail(s string) string {
	if s == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' || unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// SanitizePhone keeps ASCII digits and a single leading plus sign.
func SanitizePhone(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	if s[0] == '+' {
		b.WriteByte('+')
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	if b.String() == "+" {
		return ""
	}
	return b.String()
}
