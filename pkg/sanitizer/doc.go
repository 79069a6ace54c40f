// Package sanitizer provides deterministic, total string transforms applied to
// user input before it is stored or rendered.
//
// The helpers fall into a few groups:
//
//   - HTML – SanitizeHTML strips markup either completely (strict) or down to
//     a small allow-list of formatting tags (permissive). SanitizeText is the
//     strict variant for plain-text fields.
//
//   - Storage – SanitizeForDatabase strips quoting and comment characters as a
//     defense-in-depth layer (parameterized queries remain mandatory) and
//     SanitizeID canonicalizes identifiers.
//
//   - Format – SanitizeForURL, SanitizeEmail and SanitizePhone normalize
//     slugs, e-mail addresses and phone numbers.
//
//   - Objects – SanitizeObject walks a value.Value applying a string transform
//     to every string it meets, optionally recursing into nested objects and
//     arrays.
//
//   - Detection – DetectSQLInjection, DetectXSS and IsSafeInput expose the
//     injection heuristics shared with the threat scanner as simple booleans.
//
// Compose builds reusable pipelines out of the string helpers:
//
//	clean := sanitizer.Compose(sanitizer.Trim, sanitizer.SanitizeText)
//	bio := clean(form.Bio)
//
// # Error handling
//
// None of the helpers returns an error or panics. Invalid or absent input
// degrades to an empty string, or to ("", false) for SanitizeID.
//
// # Concurrency
//
// HTML policies and regular expressions are compiled once at package
// initialization and never mutated, so every helper is safe for concurrent
// use.
package sanitizer
