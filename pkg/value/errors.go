package value

import "errors"

var (
	ErrInvalidJSON     = errors.New("invalid JSON document")
	ErrUnsupportedType = errors.New("unsupported value type")
)
