package guard

import "fmt"

// Policy decides what happens to a request carrying a finding.
type Policy string

const (
	// PolicyReject answers 400 and never calls the next handler.
	PolicyReject Policy = "reject"
	// PolicyLog reports findings and lets the request through. The heuristics
	// have false positives, so this is the default.
	PolicyLog Policy = "log"
)

// Config is loaded from the environment with pkg/config.
type Config struct {
	MaxBodyBytes    int64  `env:"GUARD_MAX_BODY_BYTES" envDefault:"1048576"`
	Policy          Policy `env:"GUARD_POLICY" envDefault:"log"`
	MaxDepth        int    `env:"GUARD_MAX_DEPTH" envDefault:"20"`
	MaxStringLength int    `env:"GUARD_MAX_STRING_LENGTH" envDefault:"10000"`
	MaxUploadBytes  int64  `env:"GUARD_MAX_UPLOAD_BYTES" envDefault:"5242880"`
}

// DefaultConfig matches the envDefault tags.
func DefaultConfig() Config {
	return Config{
		MaxBodyBytes:    1 << 20,
		Policy:          PolicyLog,
		MaxDepth:        20,
		MaxStringLength: 10000,
		MaxUploadBytes:  5 << 20,
	}
}

func (c *Config) Validate() error {
	switch c.Policy {
	case PolicyReject, PolicyLog:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidPolicy, c.Policy)
	}
	if c.MaxBodyBytes <= 0 || c.MaxDepth <= 0 || c.MaxStringLength <= 0 || c.MaxUploadBytes <= 0 {
		return ErrInvalidLimit
	}
	return nil
}
