package threat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/inputguard/pkg/logger"
)

// ErrUnknownKind is returned by Report for a finding it cannot dispatch.
var ErrUnknownKind = errors.New("threat: unknown finding kind")

// Reporter forwards findings to an audit or event sink. Delivery guarantees
// belong to the implementation.
type Reporter interface {
	ReportSQLInjection(ctx context.Context, value, userID string) error
	ReportXSS(ctx context.Context, value, userID string) error
}

type findingKey struct{}

// FindingFromContext returns the finding being reported. Report stores it in
// the context handed to each Reporter call, so implementations can record
// the path and signature without a wider interface.
func FindingFromContext(ctx context.Context) (Finding, bool) {
	f, ok := ctx.Value(findingKey{}).(Finding)
	return f, ok
}

// Report dispatches each finding to r by kind. Every finding is attempted;
// failures are joined.
func Report(ctx context.Context, r Reporter, findings []Finding, userID string) error {
	var errs []error
	for _, f := range findings {
		fctx := context.WithValue(ctx, findingKey{}, f)
		var err error
		switch f.Kind {
		case KindSQLInjection:
			err = r.ReportSQLInjection(fctx, f.Value, userID)
		case KindXSS:
			err = r.ReportXSS(fctx, f.Value, userID)
		default:
			err = ErrUnknownKind
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("report %s at %s: %w", f.Kind, f.Path, err))
		}
	}
	return errors.Join(errs...)
}

// LogReporter writes findings to a slog logger at warn level.
type LogReporter struct {
	log *slog.Logger
}

// NewLogReporter falls back to slog.Default for a nil logger.
func NewLogReporter(log *slog.Logger) *LogReporter {
	if log == nil {
		log = slog.Default()
	}
	return &LogReporter{log: log.With(logger.Component("threat"))}
}

func (r *LogReporter) ReportSQLInjection(ctx context.Context, value, userID string) error {
	r.report(ctx, KindSQLInjection, value, userID)
	return nil
}

func (r *LogReporter) ReportXSS(ctx context.Context, value, userID string) error {
	r.report(ctx, KindXSS, value, userID)
	return nil
}

func (r *LogReporter) report(ctx context.Context, kind Kind, value, userID string) {
	attrs := []any{
		logger.ThreatKind(string(kind)),
		logger.UserID(userID),
		slog.String("value", truncate(value, 256)),
	}
	if f, ok := FindingFromContext(ctx); ok {
		attrs = append(attrs, logger.FindingPath(f.Path), logger.Signature(f.Signature))
	}
	r.log.WarnContext(ctx, "threat detected", attrs...)
}

// MultiReporter fans out to several reporters and joins their errors.
type MultiReporter []Reporter

func (m MultiReporter) ReportSQLInjection(ctx context.Context, value, userID string) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.ReportSQLInjection(ctx, value, userID))
	}
	return errors.Join(errs...)
}

func (m MultiReporter) ReportXSS(ctx context.Context, value, userID string) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.ReportXSS(ctx, value, userID))
	}
	return errors.Join(errs...)
}
