package threat_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/logger"
	"github.com/dmitrymomot/inputguard/pkg/threat"
)

type call struct {
	kind   threat.Kind
	value  string
	userID string
}

type recordingReporter struct {
	calls []call
	err   error
}

func (r *recordingReporter) ReportSQLInjection(_ context.Context, value, userID string) error {
	r.calls = append(r.calls, call{threat.KindSQLInjection, value, userID})
	return r.err
}

func (r *recordingReporter) ReportXSS(_ context.Context, value, userID string) error {
	r.calls = append(r.calls, call{threat.KindXSS, value, userID})
	return r.err
}

type pathReporter func(ctx context.Context)

func (p pathReporter) ReportSQLInjection(ctx context.Context, _, _ string) error {
	p(ctx)
	return nil
}

func (p pathReporter) ReportXSS(ctx context.Context, _, _ string) error {
	p(ctx)
	return nil
}

func TestReport(t *testing.T) {
	t.Parallel()

	findings := []threat.Finding{
		{Path: "q", Kind: threat.KindSQLInjection, Value: "' OR '1'='1"},
		{Path: "bio", Kind: threat.KindXSS, Value: "<script>x</script>"},
	}

	t.Run("dispatches by kind", func(t *testing.T) {
		rec := &recordingReporter{}
		require.NoError(t, threat.Report(context.Background(), rec, findings, "user-1"))
		assert.Equal(t, []call{
			{threat.KindSQLInjection, "' OR '1'='1", "user-1"},
			{threat.KindXSS, "<script>x</script>", "user-1"},
		}, rec.calls)
	})

	t.Run("attempts every finding and joins errors", func(t *testing.T) {
		sinkErr := errors.New("sink down")
		rec := &recordingReporter{err: sinkErr}

		err := threat.Report(context.Background(), rec, findings, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, sinkErr)
		assert.Contains(t, err.Error(), "report xss at bio")
		assert.Len(t, rec.calls, 2)
	})

	t.Run("unknown kind", func(t *testing.T) {
		err := threat.Report(context.Background(), &recordingReporter{}, []threat.Finding{{Kind: "csrf"}}, "")
		assert.ErrorIs(t, err, threat.ErrUnknownKind)
	})

	t.Run("finding travels in the context", func(t *testing.T) {
		var paths []string
		rec := threat.MultiReporter{pathReporter(func(ctx context.Context) {
			f, ok := threat.FindingFromContext(ctx)
			require.True(t, ok)
			paths = append(paths, f.Path)
		})}
		require.NoError(t, threat.Report(context.Background(), rec, findings, ""))
		assert.Equal(t, []string{"q", "bio"}, paths)

		_, ok := threat.FindingFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("no findings", func(t *testing.T) {
		assert.NoError(t, threat.Report(context.Background(), &recordingReporter{}, nil, ""))
	})
}

func TestLogReporter(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	r := threat.NewLogReporter(logger.New(logger.WithOutput(buf)))

	require.NoError(t, r.ReportXSS(context.Background(), "<script>x</script>", "user-7"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "threat detected", entry["msg"])
	assert.Equal(t, "xss", entry["threat_kind"])
	assert.Equal(t, "user-7", entry["user_id"])
	assert.Equal(t, "threat", entry["component"])
	assert.NotContains(t, entry, "finding_path")

	buf.Reset()
	finding := threat.Finding{Path: "profile.bio", Kind: threat.KindXSS, Value: "<script>", Signature: "xss.script-tag"}
	require.NoError(t, threat.Report(context.Background(), r, []threat.Finding{finding}, ""))

	entry = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "profile.bio", entry["finding_path"])
	assert.Equal(t, "xss.script-tag", entry["signature"])

	assert.NotNil(t, threat.NewLogReporter(nil))
}

func TestMultiReporter(t *testing.T) {
	t.Parallel()

	first := &recordingReporter{}
	second := &recordingReporter{err: errors.New("boom")}
	multi := threat.MultiReporter{first, second}

	err := multi.ReportSQLInjection(context.Background(), "DROP TABLE x", "u")
	assert.EqualError(t, err, "boom")
	assert.Len(t, first.calls, 1)
	assert.Len(t, second.calls, 1)

	require.NoError(t, threat.MultiReporter{first}.ReportXSS(context.Background(), "x", "u"))
	assert.Len(t, first.calls, 2)
}
