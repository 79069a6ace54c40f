// Package guard puts the threat scanner in front of HTTP handlers.
//
// Middleware reads JSON bodies up to Config.MaxBodyBytes, parses them into a
// value.Value, scans every string and reports findings through a
// threat.Reporter (usually audit.ThreatReporter). Under PolicyReject a
// request with findings is answered with 400 {"error":"invalid request"};
// under PolicyLog, the default, it continues and the findings are available
// through FindingsFromContext. The body is restored for the next handler
// either way.
//
//	cfg, err := config.Load[guard.Config]()
//	if err != nil {
//		return err
//	}
//	g := guard.New(cfg, audit.NewThreatReporter(auditLog), guard.WithLogger(log))
//	r.Use(g.Middleware)
//
// Upload validates one multipart file with pkg/file and scans its client
// filename. DecodeJSON is a strict JSON decoder for handlers behind the
// middleware.
package guard
