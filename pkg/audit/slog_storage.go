package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/inputguard/pkg/logger"
)

// SlogStorage writes events as structured log records. Failures are logged
// at warn level, everything else at info.
type SlogStorage struct {
	log *slog.Logger
}

// NewSlogStorage falls back to slog.Default for a nil logger.
func NewSlogStorage(log *slog.Logger) *SlogStorage {
	if log == nil {
		log = slog.Default()
	}
	return &SlogStorage{log: log.With(logger.Component("audit"))}
}

func (s *SlogStorage) Store(ctx context.Context, events ...Event) error {
	for _, e := range events {
		level := slog.LevelInfo
		if e.Result != ResultSuccess {
			level = slog.LevelWarn
		}

		attrs := []slog.Attr{
			slog.String("event_id", e.ID),
			slog.String("action", e.Action),
			slog.String("result", string(e.Result)),
			logger.UserID(e.UserID),
			logger.RequestID(e.RequestID),
			slog.Time("created_at", e.CreatedAt.UTC().Truncate(time.Millisecond)),
		}
		if e.Resource != "" {
			attrs = append(attrs, slog.String("resource", e.Resource), slog.String("resource_id", e.ResourceID))
		}
		if e.Error != "" {
			attrs = append(attrs, slog.String("error", e.Error))
		}
		if len(e.Metadata) > 0 {
			meta := make([]slog.Attr, 0, len(e.Metadata))
			for k, v := range e.Metadata {
				meta = append(meta, slog.Any(k, v))
			}
			attrs = append(attrs, logger.Group("metadata", meta...))
		}

		s.log.LogAttrs(ctx, level, "audit event", attrs...)
	}
	return nil
}
