package sanitizer

import "strings"

// Apply runs value through transforms in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	for _, transform := range transforms {
		if transform != nil {
			value = transform(value)
		}
	}
	return value
}

// Compose returns a reusable pipeline of transforms. Prefer it over repeated
// Apply calls when the same chain runs for every request.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// ToLower converts s to lowercase.
func ToLower(s string) string {
	return strings.ToLower(s)
}
