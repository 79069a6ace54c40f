// Package clientip resolves the client address of an HTTP request and
// carries it, with the User-Agent, in the request context.
//
// GetIP consults a configurable list of proxy headers before RemoteAddr:
//
//	r.Use(clientip.Middleware("CF-Connecting-IP", "X-Forwarded-For"))
//
// Extractor and UserAgentExtractor plug into audit.WithIPExtractor and
// audit.WithUserAgentExtractor; LoggerExtractor adds client_ip to log
// records.
package clientip
