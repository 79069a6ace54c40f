package guard_test

import (
	"context"
	"sync"

	"github.com/dmitrymomot/inputguard/pkg/threat"
)

type report struct {
	kind   threat.Kind
	value  string
	userID string
	path   string
}

type recordingReporter struct {
	mu      sync.Mutex
	reports []report
}

func (r *recordingReporter) record(ctx context.Context, kind threat.Kind, value, userID string) error {
	f, _ := threat.FindingFromContext(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report{kind, value, userID, f.Path})
	return nil
}

func (r *recordingReporter) ReportSQLInjection(ctx context.Context, value, userID string) error {
	return r.record(ctx, threat.KindSQLInjection, value, userID)
}

func (r *recordingReporter) ReportXSS(ctx context.Context, value, userID string) error {
	return r.record(ctx, threat.KindXSS, value, userID)
}

func (r *recordingReporter) all() []report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]report(nil), r.reports...)
}
