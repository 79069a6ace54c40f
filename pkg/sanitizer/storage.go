package sanitizer

import (
	"strings"
	"unicode/utf8"
)

// MaxIDLength is the longest input SanitizeID accepts. It matches the
// document id limit of the backing store.
const MaxIDLength = 1500

var databaseReplacer = strings.NewReplacer(
	"--", "",
	"'", "",
	`"`, "",
	"`", "",
	`\`, "",
	";", "",
	"<", "",
	">", "",
)

// SanitizeForDatabase strips quotes, backslashes, semicolons, SQL comment
// markers and angle brackets, then trims. It is a defense-in-depth layer and
// never a substitute for parameterized queries.
func SanitizeForDatabase(s string) string {
	if s == "" {
		return ""
	}
	// A single pass could join "-'-" into a fresh "--".
	for {
		next := databaseReplacer.Replace(s)
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

// SanitizeID keeps only [A-Za-z0-9_-]. It reports false when the input is
// longer than MaxIDLength characters or nothing survives; callers must treat
// that as "no valid identifier" and not fall back to the raw input.
func SanitizeID(s string) (string, bool) {
	if s == "" || utf8.RuneCountInString(s) > MaxIDLength {
		return "", false
	}
	id := strings.Map(func(r rune) rune {
		if isIDRune(r) {
			return r
		}
		return -1
	}, s)
	if id == "" {
		return "", false
	}
	return id, true
}

func isIDRune(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '_' || r == '-'
}
