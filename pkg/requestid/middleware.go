package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/inputguard/pkg/validator"
)

const Header = "X-Request-ID"

type config struct {
	header   string
	generate func() string
}

type Option func(*config)

// WithHeader reads and writes the id under a different header name.
func WithHeader(name string) Option {
	return func(c *config) {
		if name != "" {
			c.header = name
		}
	}
}

// WithGenerator replaces the uuid generator.
func WithGenerator(fn func() string) Option {
	return func(c *config) {
		if fn != nil {
			c.generate = fn
		}
	}
}

// New returns a middleware that propagates a client supplied id when it is
// a valid generic identifier and generates one otherwise. The id is echoed
// in the response header and stored in the request context.
func New(opts ...Option) func(http.Handler) http.Handler {
	cfg := config{
		header:   Header,
		generate: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID, err := validator.GenericID(r.Header.Get(cfg.header)).Unwrap()
			if err != nil {
				requestID = cfg.generate()
			}
			w.Header().Set(cfg.header, requestID)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), requestID)))
		})
	}
}

// Middleware is New with default options.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}
