package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/inputguard/pkg/logger"
)

// LoggerExtractor adds request_id to every record logged with a request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if requestID := FromContext(ctx); requestID != "" {
			return logger.RequestID(requestID), true
		}
		return slog.Attr{}, false
	}
}

// Extractor matches the audit logger's context extractor shape.
func Extractor() func(context.Context) (string, bool) {
	return func(ctx context.Context) (string, bool) {
		requestID := FromContext(ctx)
		return requestID, requestID != ""
	}
}
