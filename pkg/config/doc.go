// Package config loads typed configuration from the environment.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: .env
// files are merged into the process environment (existing variables win),
// then the environment is parsed into a struct using its env tags.
//
//	cfg, err := config.Load[guard.Config]()
//	if err != nil {
//		return err
//	}
//
// Structs implementing Validator are checked after parsing, so a bad value
// fails at startup rather than on the first request. MustLoad panics instead
// of returning the error.
package config
