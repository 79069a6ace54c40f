// Package threat scans decoded request payloads for SQL injection and script
// injection signatures.
//
// A Scanner walks a value.Value of any shape. Every string is truncated to
// MaxLength characters and checked against the SQL table first and the XSS
// table second; at most one Finding is produced per string. Arrays add
// "[i]" to the path, objects add ".key" (or "key" at the root), and a scalar
// scanned on its own is reported at "root". Descent stops silently below
// MaxDepth, which bounds the cost of hostile deeply nested input.
//
//	findings, err := threat.ScanJSON(body)
//	if err != nil {
//		return err
//	}
//	for _, f := range findings {
//		log.Warn("threat", logger.FindingPath(f.Path), logger.ThreatKind(string(f.Kind)))
//	}
//
// The scanner performs no I/O. Findings are observations; deciding whether
// to reject a request is left to the caller. Report forwards findings to a
// Reporter such as LogReporter or an audit sink.
//
// The signatures are heuristics. Novel obfuscations slip through and
// ordinary prose that reads like SQL ("select the best option") can match.
package threat
