package clientip

import (
	"net/http"
	"unicode/utf8"
)

// maxUserAgentLength caps the stored User-Agent.
const maxUserAgentLength = 512

// Middleware stores the client IP and User-Agent in the request context,
// reading the given proxy headers in order (DefaultHeaders when none).
func Middleware(headers ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithContext(r.Context(), GetIP(r, headers...))
			ctx = WithUserAgent(ctx, truncate(r.UserAgent(), maxUserAgentLength))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
