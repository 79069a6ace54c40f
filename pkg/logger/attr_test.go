package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()

	attr := logger.Group("finding", slog.String("path", "a.b"), slog.Int("n", 2))
	require.Equal(t, "finding", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "path", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestErrors(t *testing.T) {
	t.Parallel()

	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "0", g[0].Key)
	assert.Equal(t, "2", g[1].Key)

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestStringAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr func(string) slog.Attr
		key  string
	}{
		{"user id", logger.UserID, "user_id"},
		{"request id", logger.RequestID, "request_id"},
		{"threat kind", logger.ThreatKind, "threat_kind"},
		{"finding path", logger.FindingPath, "finding_path"},
		{"signature", logger.Signature, "signature"},
		{"policy", logger.Policy, "policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := tt.attr("value")
			assert.Equal(t, tt.key, attr.Key)
			assert.Equal(t, "value", attr.Value.String())
			assert.True(t, tt.attr("").Equal(slog.Attr{}), "empty input yields an empty attr")
		})
	}

	assert.Equal(t, "component", logger.Component("scanner").Key)
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
}
