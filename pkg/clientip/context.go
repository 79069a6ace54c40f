package clientip

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/inputguard/pkg/logger"
)

type ipKey struct{}
type userAgentKey struct{}

func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipKey{}, ip)
}

// FromContext returns the client IP stored by the middleware, or "".
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ipKey{}).(string)
	return ip
}

func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, userAgentKey{}, ua)
}

func UserAgentFromContext(ctx context.Context) string {
	ua, _ := ctx.Value(userAgentKey{}).(string)
	return ua
}

// Extractor adapts FromContext to the audit logger's extractor shape.
func Extractor() func(context.Context) (string, bool) {
	return func(ctx context.Context) (string, bool) {
		ip := FromContext(ctx)
		return ip, ip != ""
	}
}

// UserAgentExtractor adapts UserAgentFromContext to the audit logger's
// extractor shape.
func UserAgentExtractor() func(context.Context) (string, bool) {
	return func(ctx context.Context) (string, bool) {
		ua := UserAgentFromContext(ctx)
		return ua, ua != ""
	}
}

// LoggerExtractor adds client_ip to every record logged with the request
// context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		ip := FromContext(ctx)
		if ip == "" {
			return slog.Attr{}, false
		}
		return slog.String("client_ip", ip), true
	}
}
