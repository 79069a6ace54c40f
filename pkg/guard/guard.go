package guard

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/dmitrymomot/inputguard/pkg/logger"
	"github.com/dmitrymomot/inputguard/pkg/threat"
	"github.com/dmitrymomot/inputguard/pkg/value"
)

// Guard scans request bodies for injection payloads and reports what it
// finds. Safe for concurrent use.
type Guard struct {
	cfg      Config
	scanner  *threat.Scanner
	reporter threat.Reporter
	log      *slog.Logger
	userID   func(context.Context) (string, bool)
}

type Option func(*Guard)

// WithLogger sets the logger for guard decisions. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.log = l
		}
	}
}

// WithUserIDExtractor supplies the user id passed to the reporter.
func WithUserIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(g *Guard) {
		g.userID = fn
	}
}

// New builds a Guard. A nil reporter falls back to a threat.LogReporter.
// cfg is not validated here; load it with config.Load to get that.
func New(cfg Config, reporter threat.Reporter, opts ...Option) *Guard {
	g := &Guard{
		cfg: cfg,
		scanner: threat.New(
			threat.WithMaxDepth(cfg.MaxDepth),
			threat.WithMaxLength(cfg.MaxStringLength),
		),
		reporter: reporter,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.reporter == nil {
		g.reporter = threat.NewLogReporter(g.log)
	}
	g.log = g.log.With(logger.Component("guard"))
	return g
}

func (g *Guard) Config() Config { return g.cfg }

type findingsKey struct{}

// FindingsFromContext returns what the middleware found in a request that
// was let through under PolicyLog.
func FindingsFromContext(ctx context.Context) []threat.Finding {
	findings, _ := ctx.Value(findingsKey{}).([]threat.Finding)
	return findings
}

// Middleware inspects JSON bodies. Bodies over MaxBodyBytes get 413. Other
// content types and malformed JSON pass through untouched; the downstream
// decoder rejects them. With findings the request is reported and, under
// PolicyReject, answered with 400 {"error":"invalid request"}. The body is
// restored for the next handler.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody || !isJSON(r.Header.Get("Content-Type")) {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, g.cfg.MaxBodyBytes+1))
		_ = r.Body.Close()
		if err != nil {
			g.log.WarnContext(r.Context(), "failed to read request body", logger.Error(err))
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if int64(len(body)) > g.cfg.MaxBodyBytes {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		r.ContentLength = int64(len(body))

		v, err := value.Parse(body)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		findings := g.scanner.Scan(v)
		if len(findings) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		g.report(ctx, findings)

		if g.cfg.Policy == PolicyReject {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, findingsKey{}, findings)))
	})
}

// Check scans an already decoded value, reports findings and tells whether
// the caller should continue under the configured policy.
func (g *Guard) Check(ctx context.Context, v value.Value) ([]threat.Finding, bool) {
	findings := g.scanner.Scan(v)
	if len(findings) == 0 {
		return nil, true
	}
	g.report(ctx, findings)
	return findings, g.cfg.Policy != PolicyReject
}

func (g *Guard) report(ctx context.Context, findings []threat.Finding) {
	userID := ""
	if g.userID != nil {
		userID, _ = g.userID(ctx)
	}

	for _, f := range findings {
		g.log.WarnContext(ctx, "suspicious input",
			logger.ThreatKind(string(f.Kind)),
			logger.FindingPath(f.Path),
			logger.Signature(f.Signature),
			logger.Policy(string(g.cfg.Policy)),
		)
	}

	if err := threat.Report(ctx, g.reporter, findings, userID); err != nil {
		g.log.ErrorContext(ctx, "failed to report findings", logger.Error(err))
	}
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
