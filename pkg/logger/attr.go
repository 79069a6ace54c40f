package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". Nil errors produce an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors", keyed by position.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// UserID records the (possibly pseudonymized) user under "user_id".
func UserID(id string) slog.Attr {
	return nonEmpty("user_id", id)
}

func RequestID(id string) slog.Attr {
	return nonEmpty("request_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// ThreatKind records the finding category ("sql_injection", "xss").
func ThreatKind(kind string) slog.Attr {
	return nonEmpty("threat_kind", kind)
}

// FindingPath records where in a payload a finding was located.
func FindingPath(path string) slog.Attr {
	return nonEmpty("finding_path", path)
}

// Signature records the name of the heuristic that matched.
func Signature(name string) slog.Attr {
	return nonEmpty("signature", name)
}

// Policy records the enforcement policy applied to a request.
func Policy(name string) slog.Attr {
	return nonEmpty("policy", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func nonEmpty(key, v string) slog.Attr {
	if v == "" {
		return slog.Attr{}
	}
	return slog.String(key, v)
}
