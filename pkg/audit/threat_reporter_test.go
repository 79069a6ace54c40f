package audit_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/audit"
	"github.com/dmitrymomot/inputguard/pkg/requestid"
	"github.com/dmitrymomot/inputguard/pkg/threat"
)

func TestThreatReporter(t *testing.T) {
	t.Parallel()

	t.Run("records scanner findings", func(t *testing.T) {
		storage := &memoryStorage{}
		reporter := audit.NewThreatReporter(audit.NewLogger(storage,
			audit.WithRequestIDExtractor(requestid.Extractor()),
		))

		findings, err := threat.ScanJSON([]byte(`{"q":"1' OR '1'='1","profile":{"bio":"<script>alert(1)</script>"}}`))
		require.NoError(t, err)
		require.Len(t, findings, 2)

		ctx := requestid.WithContext(context.Background(), "req-9")
		require.NoError(t, threat.Report(ctx, reporter, findings, "user-3"))

		events, _ := storage.snapshot()
		require.Len(t, events, 2)

		assert.Equal(t, audit.ActionSQLInjection, events[0].Action)
		assert.Equal(t, audit.ResultFailure, events[0].Result)
		assert.Equal(t, "user-3", events[0].UserID)
		assert.Equal(t, "req-9", events[0].RequestID)
		assert.Equal(t, "q", events[0].Metadata["path"])
		assert.Equal(t, "sql_injection", events[0].Metadata["kind"])
		assert.NotEmpty(t, events[0].Metadata["signature"])

		assert.Equal(t, audit.ActionXSS, events[1].Action)
		assert.Equal(t, "profile.bio", events[1].Metadata["path"])
		assert.Equal(t, "<script>alert(1)</script>", events[1].Metadata["value"])
	})

	t.Run("direct calls have no path", func(t *testing.T) {
		storage := &memoryStorage{}
		reporter := audit.NewThreatReporter(audit.NewLogger(storage))

		require.NoError(t, reporter.ReportXSS(context.Background(), "<script>", ""))

		events, _ := storage.snapshot()
		require.Len(t, events, 1)
		assert.Empty(t, events[0].UserID)
		assert.NotContains(t, events[0].Metadata, "path")
	})

	t.Run("value is truncated", func(t *testing.T) {
		storage := &memoryStorage{}
		reporter := audit.NewThreatReporter(audit.NewLogger(storage))

		long := strings.Repeat("é", audit.MaxReportedValue+10)
		require.NoError(t, reporter.ReportSQLInjection(context.Background(), long, "u"))

		events, _ := storage.snapshot()
		value := events[0].Metadata["value"].(string)
		assert.Equal(t, audit.MaxReportedValue, utf8.RuneCountInString(value))
		assert.True(t, utf8.ValidString(value))
	})

	t.Run("nil logger panics", func(t *testing.T) {
		assert.Panics(t, func() { audit.NewThreatReporter(nil) })
	})
}
