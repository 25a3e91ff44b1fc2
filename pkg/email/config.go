package email

import "time"

// Config holds distribution settings.
// APIKey is optional at load time so local generation works without
// credentials; remote calls fail with ErrMissingCredential instead.
type Config struct {
	APIKey      string        `env:"SENDGRID_API_KEY"`
	APIHost     string        `env:"SENDGRID_API_HOST" envDefault:"https://api.sendgrid.com"`
	HTTPTimeout time.Duration `env:"EMAILKIT_HTTP_TIMEOUT" envDefault:"30s"`
}

// S3Config configures the optional S3 mirror of generated files.
// An empty Bucket disables the mirror.
type S3Config struct {
	Bucket          string `env:"EMAILKIT_S3_BUCKET"`
	Region          string `env:"EMAILKIT_S3_REGION" envDefault:"us-east-1"`
	Prefix          string `env:"EMAILKIT_S3_PREFIX"`
	Endpoint        string `env:"EMAILKIT_S3_ENDPOINT"`
	AccessKeyID     string `env:"EMAILKIT_S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"EMAILKIT_S3_SECRET_ACCESS_KEY"`
	ForcePathStyle  bool   `env:"EMAILKIT_S3_FORCE_PATH_STYLE"`
}

// Enabled reports whether a bucket is configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}
