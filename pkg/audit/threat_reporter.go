package audit

import (
	"context"

	"github.com/dmitrymomot/inputguard/pkg/threat"
)

// MaxReportedValue caps the offending value copied into event metadata.
const MaxReportedValue = 256

var _ threat.Reporter = (*ThreatReporter)(nil)

// ThreatReporter records scanner findings as failure events with the
// security.* actions.
type ThreatReporter struct {
	log *Logger
}

// NewThreatReporter panics on a nil logger.
func NewThreatReporter(log *Logger) *ThreatReporter {
	if log == nil {
		panic(ErrNilStorage)
	}
	return &ThreatReporter{log: log}
}

func (r *ThreatReporter) ReportSQLInjection(ctx context.Context, value, userID string) error {
	return r.report(ctx, ActionSQLInjection, threat.KindSQLInjection, value, userID)
}

func (r *ThreatReporter) ReportXSS(ctx context.Context, value, userID string) error {
	return r.report(ctx, ActionXSS, threat.KindXSS, value, userID)
}

func (r *ThreatReporter) report(ctx context.Context, action string, kind threat.Kind, value, userID string) error {
	opts := []EventOption{
		WithUserID(userID),
		WithMetadata("kind", string(kind)),
		WithMetadata("value", truncateRunes(value, MaxReportedValue)),
	}
	if f, ok := threat.FindingFromContext(ctx); ok {
		opts = append(opts,
			WithMetadata("path", f.Path),
			WithMetadata("signature", f.Signature),
		)
	}
	return r.log.LogFailure(ctx, action, opts...)
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
