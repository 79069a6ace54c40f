package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders is the proxy header order used when no WithHeaders option
// is given. Only enable headers your edge proxy overwrites; anything else is
// client controlled.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// maxForwardedEntries bounds how much of an X-Forwarded-For chain is parsed.
const maxForwardedEntries = 20

// GetIP returns the client address from the first trusted header carrying a
// valid IP, falling back to RemoteAddr. Invalid values are skipped. The
// result is normalized; IPv4-mapped IPv6 addresses are unmapped and zones
// dropped. An empty string means no valid address was found.
func GetIP(r *http.Request, headers ...string) string {
	if len(headers) == 0 {
		headers = DefaultHeaders
	}

	for _, h := range headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		if !strings.EqualFold(h, "X-Forwarded-For") {
			if ip := parseIP(v); ip != "" {
				return ip
			}
			continue
		}
		n := 0
		for part := range strings.SplitSeq(v, ",") {
			if n++; n > maxForwardedEntries {
				break
			}
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
