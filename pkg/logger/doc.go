// Package logger builds *slog.Logger instances for inputguard services and
// provides attribute helpers so that security events share a single vocabulary.
//
// New accepts functional options:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "inputguard"),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
// Context extractors run on every record, so request-scoped values such as the
// request id end up on log lines emitted deep inside the scanner or reporters
// without being threaded through by hand.
//
// Attribute helpers (Error, UserID, RequestID, ThreatKind, FindingPath, ...)
// return an empty slog.Attr for empty input, which slog drops, so call sites
// need no nil checks:
//
//	log.WarnContext(ctx, "threat detected",
//		logger.ThreatKind(string(f.Kind)),
//		logger.FindingPath(f.Path),
//		logger.UserID(userID),
//	)
package logger
