package threat

import (
	"fmt"
	"strconv"

	"github.com/dmitrymomot/inputguard/internal/pattern"
	"github.com/dmitrymomot/inputguard/pkg/value"
)

const (
	DefaultMaxDepth  = 20
	DefaultMaxLength = 10000
)

// Scanner is immutable once built and safe for concurrent use.
type Scanner struct {
	maxDepth  int
	maxLength int
}

type Option func(*Scanner)

// WithMaxDepth limits how many levels below the root are inspected.
// Non-positive values are ignored.
func WithMaxDepth(depth int) Option {
	return func(s *Scanner) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithMaxLength limits how many characters of each string are inspected.
// Non-positive values are ignored.
func WithMaxLength(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.maxLength = n
		}
	}
}

func New(opts ...Option) *Scanner {
	s := &Scanner{
		maxDepth:  DefaultMaxDepth,
		maxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scanner) MaxDepth() int  { return s.maxDepth }
func (s *Scanner) MaxLength() int { return s.maxLength }

// Scan returns the findings in v in document order.
func (s *Scanner) Scan(v value.Value) []Finding {
	var findings []Finding
	s.walk(v, "", 0, &findings)
	return findings
}

// ScanAny scans a value decoded by encoding/json or built by hand.
func (s *Scanner) ScanAny(in any) ([]Finding, error) {
	v, err := value.FromAny(in)
	if err != nil {
		return nil, fmt.Errorf("threat: %w", err)
	}
	return s.Scan(v), nil
}

// ScanJSON parses data and scans it.
func (s *Scanner) ScanJSON(data []byte) ([]Finding, error) {
	v, err := value.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("threat: %w", err)
	}
	return s.Scan(v), nil
}

// ScanString checks a single string, reported at RootPath.
func (s *Scanner) ScanString(str string) (Finding, bool) {
	return s.inspect(str, RootPath)
}

func (s *Scanner) walk(v value.Value, path string, depth int, out *[]Finding) {
	if depth > s.maxDepth {
		return
	}

	switch v.Kind() {
	case value.KindString:
		str, _ := v.Str()
		p := path
		if p == "" {
			p = RootPath
		}
		if f, ok := s.inspect(str, p); ok {
			*out = append(*out, f)
		}
	case value.KindArray:
		for i, item := range v.Items() {
			s.walk(item, path+"["+strconv.Itoa(i)+"]", depth+1, out)
		}
	case value.KindObject:
		for _, m := range v.Members() {
			p := m.Key
			if path != "" {
				p = path + "." + m.Key
			}
			s.walk(m.Value, p, depth+1, out)
		}
	}
}

func (s *Scanner) inspect(str, path string) (Finding, bool) {
	str = truncate(str, s.maxLength)
	if r, ok := pattern.SQLInjection(str); ok {
		return Finding{Path: path, Kind: KindSQLInjection, Value: str, Signature: r.Name}, true
	}
	if r, ok := pattern.XSS(str); ok {
		return Finding{Path: path, Kind: KindXSS, Value: str, Signature: r.Name}, true
	}
	return Finding{}, false
}

// truncate keeps the first n characters of s.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

var defaultScanner = New()

// Scan uses a scanner with the default limits.
func Scan(v value.Value) []Finding {
	return defaultScanner.Scan(v)
}

func ScanAny(in any) ([]Finding, error) {
	return defaultScanner.ScanAny(in)
}

func ScanJSON(data []byte) ([]Finding, error) {
	return defaultScanner.ScanJSON(data)
}
