package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validator is implemented by config structs that check their own invariants
// after parsing.
type Validator interface {
	Validate() error
}

type options struct {
	files  []string
	prefix string
}

type Option func(*options)

// WithEnvFiles loads the given files instead of the default .env. Missing
// files are an error. Variables already present in the environment win.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = append(o.files, files...)
	}
}

// WithPrefix prepends prefix to every variable name, e.g. "APP_".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// Load parses the environment into a new T using its env tags. The default
// .env file is read when present. If T implements Validator, Validate runs
// last and its error is wrapped with ErrInvalidConfig.
//
//	type GuardConfig struct {
//		MaxBodyBytes int64 `env:"GUARD_MAX_BODY_BYTES" envDefault:"1048576"`
//	}
//
//	cfg, err := config.Load[GuardConfig]()
func Load[T any](opts ...Option) (T, error) {
	var zero T

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if err := loadEnvFiles(o.files); err != nil {
		return zero, err
	}

	cfg, err := env.ParseAsWithOptions[T](env.Options{Prefix: o.prefix})
	if err != nil {
		return zero, errors.Join(ErrParsingConfig, err)
	}

	if v, ok := any(&cfg).(Validator); ok {
		if err := v.Validate(); err != nil {
			return zero, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return cfg, nil
}

// MustLoad works like Load but panics on failure. Use it in main for
// configuration the process cannot start without.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Join(ErrLoadingEnvFile, err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}
