package sanitizer

import "github.com/dmitrymomot/inputguard/internal/pattern"

// Reasons reported by IsSafeInput.
const (
	ReasonSQLInjection = "SQL injection detected"
	ReasonXSS          = "XSS detected"
)

// SafeResult is the outcome of IsSafeInput.
type SafeResult struct {
	Safe   bool
	Reason string
}

// DetectSQLInjection reports whether s matches a SQL injection signature.
func DetectSQLInjection(s string) bool {
	_, ok := pattern.SQLInjection(s)
	return ok
}

// DetectXSS reports whether s matches a script injection signature.
func DetectXSS(s string) bool {
	_, ok := pattern.XSS(s)
	return ok
}

// IsSafeInput checks s against both signature sets. SQL injection is checked
// first, so it is the reported reason when both match.
func IsSafeInput(s string) SafeResult {
	if DetectSQLInjection(s) {
		return SafeResult{Reason: ReasonSQLInjection}
	}
	if DetectXSS(s) {
		return SafeResult{Reason: ReasonXSS}
	}
	return SafeResult{Safe: true}
}
