package validator

// Issue is a single field-level violation carried by a Result.
type Issue = ValidationError

// Result is either Ok with the normalized value or a failure carrying every
// violated rule in order. Business-rule failures never panic.
type Result[T any] struct {
	value  T
	issues ValidationErrors
}

// Ok wraps a successfully validated value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Invalid builds a failed result. The normalized value is kept so callers can
// redisplay what the user submitted.
func Invalid[T any](v T, issues ValidationErrors) Result[T] {
	if len(issues) == 0 {
		return Ok(v)
	}
	return Result[T]{value: v, issues: issues}
}

func (r Result[T]) OK() bool {
	return len(r.issues) == 0
}

// Value returns the normalized value. It is meaningful even for failed results.
func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Issues() ValidationErrors {
	return r.issues
}

// Err returns nil for Ok and ValidationErrors otherwise.
func (r Result[T]) Err() error {
	if r.OK() {
		return nil
	}
	return r.issues
}

// Unwrap returns the value together with Err, for call sites that prefer the
// usual (value, error) shape.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.Err()
}

// Schema validates and normalizes a T.
type Schema[T any] func(T) Result[T]

// Validate runs schema against input. A nil schema is a defect in the caller
// and panics with ErrNilSchema.
func Validate[T any](schema Schema[T], input T) Result[T] {
	if schema == nil {
		panic(ErrNilSchema)
	}
	return schema(input)
}

// Collect appends the issues of r, nested under field, to issues and returns
// the normalized value. It is the building block for composite schemas.
func Collect[T any](issues *ValidationErrors, field string, r Result[T]) T {
	if !r.OK() {
		*issues = append(*issues, r.issues.prefixed(field)...)
	}
	return r.value
}

// check turns a rule list into a Result around the already-normalized value.
func check[T any](v T, rules ...Rule) Result[T] {
	return Invalid(v, collect(rules...))
}
