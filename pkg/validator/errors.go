package validator

import "errors"

var (
	// ErrValidationFailed matches any ValidationErrors via errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNilSchema signals a schema without a check function. It is a
	// programmer error and is raised as a panic.
	ErrNilSchema = errors.New("validator: schema has no check function")
)
