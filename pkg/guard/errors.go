package guard

import "errors"

var (
	ErrInvalidPolicy    = errors.New("guard: policy must be \"reject\" or \"log\"")
	ErrInvalidLimit     = errors.New("guard: limits must be positive")
	ErrBodyTooLarge     = errors.New("guard: request body too large")
	ErrInvalidBody      = errors.New("guard: invalid request body")
	ErrUnsupportedMedia = errors.New("guard: unsupported content type")
	ErrMissingUpload    = errors.New("guard: upload field is missing")
	ErrSuspiciousInput  = errors.New("guard: suspicious input")
)
