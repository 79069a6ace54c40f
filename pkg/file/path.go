package file

import (
	"net/url"
	"strings"

	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
)

// SanitizeStoragePath normalizes a client-influenced storage key. Backslashes
// become slashes, one leading slash is removed and the rest is stripped of
// markup. The checks run on the stripped result: paths containing ".." (also
// percent-encoded) or NUL bytes are rejected. A false result means "generate
// a fresh key"; never fall back to the raw input.
//
// Only one leading separator is removed, so "//a" yields "/a".
func SanitizeStoragePath(p string) (string, bool) {
	if strings.TrimSpace(p) == "" || strings.ContainsRune(p, 0) {
		return "", false
	}

	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimPrefix(p, "/")
	// Stripping tags can join dots (".<i></i>."), so it comes first.
	p = strings.TrimSpace(sanitizer.SanitizeText(p))
	if p == "" {
		return "", false
	}

	if strings.Contains(p, "..") || strings.ContainsRune(p, 0) {
		return "", false
	}
	if decoded, err := url.PathUnescape(p); err == nil && (strings.Contains(decoded, "..") || strings.ContainsRune(decoded, 0)) {
		return "", false
	}
	return p, true
}
