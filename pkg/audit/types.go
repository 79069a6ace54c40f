package audit

import (
	"context"
	"fmt"
	"time"
)

// Result represents the outcome of an audited action
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
	ResultError   Result = "error"
)

// Security actions recorded by ThreatReporter.
const (
	ActionSQLInjection = "security.sql_injection"
	ActionXSS          = "security.xss"
)

// Event represents a single audit log entry
type Event struct {
	ID         string         `json:"id" bson:"_id"`
	UserID     string         `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Action     string         `json:"action" bson:"action"`
	Resource   string         `json:"resource,omitempty" bson:"resource,omitempty"`
	ResourceID string         `json:"resource_id,omitempty" bson:"resource_id,omitempty"`
	Result     Result         `json:"result" bson:"result"`
	Error      string         `json:"error,omitempty" bson:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty" bson:"request_id,omitempty"`
	IP         string         `json:"ip,omitempty" bson:"ip,omitempty"`
	UserAgent  string         `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
}

// Validate checks if the event has all required fields
func (e *Event) Validate() error {
	if e.Action == "" {
		return fmt.Errorf("%w: action is required", ErrEventValidation)
	}
	switch e.Result {
	case ResultSuccess, ResultFailure, ResultError:
	default:
		return fmt.Errorf("%w: unknown result %q", ErrEventValidation, e.Result)
	}
	return nil
}

// EventOption applies configuration to an Event during creation.
type EventOption func(*Event)

// Storage persists audit events. Implementations must be safe for
// concurrent use.
type Storage interface {
	Store(ctx context.Context, events ...Event) error
}

// StorageFunc adapts a function to Storage.
type StorageFunc func(ctx context.Context, events ...Event) error

func (f StorageFunc) Store(ctx context.Context, events ...Event) error {
	return f(ctx, events...)
}
