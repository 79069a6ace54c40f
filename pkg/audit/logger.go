package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// contextExtractor extracts string values from context.
// It returns (value, found) where found indicates if extraction succeeded.
type contextExtractor func(context.Context) (string, bool)

// Logger builds events from the request context and writes them to a Storage.
type Logger struct {
	storage            Storage
	userIDExtractor    contextExtractor
	requestIDExtractor contextExtractor
	ipExtractor        contextExtractor
	userAgentExtractor contextExtractor
	userIDHasher       Hasher
	now                func() time.Time
}

// Option configures Logger behavior during initialization
type Option func(*Logger)

func WithUserIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *Logger) {
		l.userIDExtractor = fn
	}
}

func WithRequestIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *Logger) {
		l.requestIDExtractor = fn
	}
}

func WithIPExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *Logger) {
		l.ipExtractor = fn
	}
}

func WithUserAgentExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *Logger) {
		l.userAgentExtractor = fn
	}
}

// WithUserIDHasher pseudonymizes user ids before storage.
func WithUserIDHasher(h Hasher) Option {
	return func(l *Logger) {
		l.userIDHasher = h
	}
}

// WithClock overrides time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLogger creates a new audit logger. It panics with ErrNilStorage when
// storage is nil.
func NewLogger(storage Storage, opts ...Option) *Logger {
	if storage == nil {
		panic(ErrNilStorage)
	}

	l := &Logger{
		storage: storage,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log records a successful action
func (l *Logger) Log(ctx context.Context, action string, opts ...EventOption) error {
	event := l.newEvent(ctx, action, ResultSuccess)
	return l.store(ctx, event, opts)
}

// LogFailure records an action that was refused or detected as hostile.
func (l *Logger) LogFailure(ctx context.Context, action string, opts ...EventOption) error {
	event := l.newEvent(ctx, action, ResultFailure)
	return l.store(ctx, event, opts)
}

// LogError records an action that failed with err
func (l *Logger) LogError(ctx context.Context, action string, err error, opts ...EventOption) error {
	event := l.newEvent(ctx, action, ResultError)
	if err != nil {
		event.Error = err.Error()
	}
	return l.store(ctx, event, opts)
}

func (l *Logger) newEvent(ctx context.Context, action string, result Result) Event {
	event := l.eventFromContext(ctx)
	event.ID = uuid.New().String()
	event.CreatedAt = l.now().UTC()
	event.Action = action
	event.Result = result
	return event
}

func (l *Logger) store(ctx context.Context, event Event, opts []EventOption) error {
	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		return err
	}

	if l.userIDHasher != nil && event.UserID != "" {
		event.UserID = l.userIDHasher.Hash(event.UserID)
	}

	return l.storage.Store(ctx, event)
}

// eventFromContext extracts event data from context
func (l *Logger) eventFromContext(ctx context.Context) Event {
	event := Event{}

	if l.userIDExtractor != nil {
		if userID, ok := l.userIDExtractor(ctx); ok {
			event.UserID = userID
		}
	}

	if l.requestIDExtractor != nil {
		if requestID, ok := l.requestIDExtractor(ctx); ok {
			event.RequestID = requestID
		}
	}

	if l.ipExtractor != nil {
		if ip, ok := l.ipExtractor(ctx); ok {
			event.IP = ip
		}
	}

	if l.userAgentExtractor != nil {
		if userAgent, ok := l.userAgentExtractor(ctx); ok {
			event.UserAgent = userAgent
		}
	}

	return event
}
