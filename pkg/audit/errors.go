package audit

import "errors"

var (
	// ErrStorageNotAvailable indicates the storage backend is unavailable
	ErrStorageNotAvailable = errors.New("storage backend is unavailable")

	// ErrEventValidation indicates event validation failed
	ErrEventValidation = errors.New("event validation failed")

	// ErrNilStorage is the panic value of constructors given a nil storage
	ErrNilStorage = errors.New("audit: storage cannot be nil")

	// ErrInvalidHashKey indicates a pseudonymizer key of the wrong size
	ErrInvalidHashKey = errors.New("audit: hash key must be 16 to 64 bytes")
)
