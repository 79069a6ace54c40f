package sanitizer

import "github.com/dmitrymomot/inputguard/pkg/value"

// Options configures SanitizeObject.
type Options struct {
	// StripAllHTML selects SanitizeText as the string transform. When false
	// the permissive SanitizeHTML policy is used.
	StripAllHTML bool
	// Deep recurses into nested objects.
	Deep bool
	// WalkArrays also sanitizes array elements. Arrays are left untouched
	// by default, matching the behaviour callers already rely on; set this
	// to cover list fields such as tags.
	WalkArrays bool
	// Transform overrides the string transform selected by StripAllHTML.
	Transform func(string) string
}

func (o Options) transform() func(string) string {
	if o.Transform != nil {
		return o.Transform
	}
	if o.StripAllHTML {
		return SanitizeText
	}
	return func(s string) string { return SanitizeHTML(s, false) }
}

// SanitizeObject applies a string transform to every string member of an
// object. Numbers, booleans and nulls pass through unchanged. Nested objects
// are only visited with Deep, arrays only with WalkArrays. A bare string is
// transformed; any other non-object input is returned as is.
func SanitizeObject(v value.Value, opts Options) value.Value {
	fn := opts.transform()
	switch v.Kind() {
	case value.KindString:
		s, _ := v.Str()
		return value.String(fn(s))
	case value.KindObject:
		return sanitizeMembers(v, fn, opts)
	case value.KindArray:
		if opts.WalkArrays {
			return sanitizeItems(v, fn, opts)
		}
	}
	return v
}

func sanitizeMembers(v value.Value, fn func(string) string, opts Options) value.Value {
	members := v.Members()
	out := make([]value.Member, len(members))
	for i, m := range members {
		out[i] = value.Field(m.Key, sanitizeNested(m.Value, fn, opts))
	}
	return value.Object(out...)
}

func sanitizeItems(v value.Value, fn func(string) string, opts Options) value.Value {
	items := v.Items()
	out := make([]value.Value, len(items))
	for i, item := range items {
		out[i] = sanitizeNested(item, fn, opts)
	}
	return value.Array(out...)
}

func sanitizeNested(v value.Value, fn func(string) string, opts Options) value.Value {
	switch v.Kind() {
	case value.KindString:
		s, _ := v.Str()
		return value.String(fn(s))
	case value.KindObject:
		if opts.Deep {
			return sanitizeMembers(v, fn, opts)
		}
	case value.KindArray:
		if opts.WalkArrays {
			return sanitizeItems(v, fn, opts)
		}
	}
	return v
}

// SanitizeMap is SanitizeObject for maps decoded by encoding/json. Values
// that cannot be represented leave the map untouched.
func SanitizeMap(m map[string]any, opts Options) map[string]any {
	if m == nil {
		return nil
	}
	v, err := value.FromAny(m)
	if err != nil {
		return m
	}
	out, _ := SanitizeObject(v, opts).Any().(map[string]any)
	return out
}
