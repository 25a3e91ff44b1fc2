package main

import (
	"github.com/dmitrymomot/emailkit/pkg/email"
)

// Config is read from the environment and an optional .env file.
type Config struct {
	Env          string `env:"EMAILKIT_ENV" envDefault:"development"`
	LogLevel     string `env:"EMAILKIT_LOG_LEVEL"`
	LocalesDir   string `env:"EMAILKIT_LOCALES_DIR" envDefault:"locales"`
	TemplatesDir string `env:"EMAILKIT_TEMPLATES_DIR" envDefault:"templates"`
	ModelsDir    string `env:"EMAILKIT_MODELS_DIR" envDefault:"models"`
	OutputDir    string `env:"EMAILKIT_OUTPUT_DIR" envDefault:"dist"`

	SendGrid email.Config
	S3       email.S3Config
}
