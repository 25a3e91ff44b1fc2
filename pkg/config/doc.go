// Package config loads configuration from environment variables into
// tagged structs, using github.com/caarlos0/env/v11 for parsing and
// github.com/joho/godotenv for optional .env files.
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithEnvFiles(".env.deploy")); err != nil {
//		return err
//	}
//
// Tests can bypass the process environment entirely:
//
//	err := config.Load(&cfg, config.WithEnvironment(map[string]string{
//		"EMAILKIT_OUTPUT_DIR": t.TempDir(),
//	}))
package config
