package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

type options struct {
	envFiles    []string
	environment map[string]string
	prefix      string
}

// Option configures Load.
type Option func(*options)

// WithEnvFiles loads the given dotenv files before parsing. Unlike the
// default .env, these files must exist. Variables already set in the
// process environment are not overridden.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) {
		o.envFiles = append(o.envFiles, paths...)
	}
}

// WithEnvironment parses from vars instead of the process environment.
// Dotenv files are not read in this mode.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) {
		o.environment = vars
	}
}

// WithPrefix prepends prefix to every variable name.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// Load parses environment variables into v based on its `env` field tags.
//
// A .env file in the working directory is loaded once per process if it
// exists. Example:
//
//	type Config struct {
//		OutputDir string `env:"EMAILKIT_OUTPUT_DIR" envDefault:"dist"`
//		APIKey    string `env:"SENDGRID_API_KEY"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.environment == nil {
		defaultEnvLoaded.Do(func() {
			// the default .env is optional
			_ = godotenv.Load()
		})
		if len(o.envFiles) > 0 {
			if err := godotenv.Load(o.envFiles...); err != nil {
				return errors.Join(ErrLoadingEnvFile, err)
			}
		}
	}

	if err := env.ParseWithOptions(v, env.Options{
		Environment: o.environment,
		Prefix:      o.prefix,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}
