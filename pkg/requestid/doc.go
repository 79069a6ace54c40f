// Package requestid correlates log records, audit events and threat reports
// belonging to one HTTP request.
//
// Middleware accepts an incoming X-Request-ID when it is a safe identifier
// (letters, digits, hyphens and underscores, at most 128 characters) and
// otherwise generates a UUID. The id is echoed in the response and stored in
// the request context:
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	auditLog := audit.NewLogger(storage, audit.WithRequestIDExtractor(requestid.Extractor()))
package requestid
